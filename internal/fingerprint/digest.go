package fingerprint

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
)

// DigestSize is the required digest length in bytes. The axis table assumes
// a 256-bit digest; any collision-resistant digest of that size is
// substitutable without changing downstream semantics.
const DigestSize = 32

var (
	// ErrInvalidDigestLength is returned when the mapper receives a digest
	// that is not exactly DigestSize bytes. No partial configuration is
	// produced.
	ErrInvalidDigestLength = errors.New("digest must be exactly 32 bytes")

	// ErrDigestUnavailable is returned when the digest provider fails.
	// There is no fallback digest: substituting weaker randomness would
	// silently break the fingerprint contract.
	ErrDigestUnavailable = errors.New("digest provider unavailable")
)

// Digester computes the cryptographic digest a fingerprint derives from.
// Implementations must be deterministic: identical input bytes always yield
// identical digests. The context allows cancellation of providers that do
// real work (remote signers, hardware modules); SHA256Digester ignores it.
type Digester interface {
	Digest(ctx context.Context, input []byte) ([DigestSize]byte, error)
}

// SHA256Digester is the reference digest provider.
type SHA256Digester struct{}

// Digest returns the SHA-256 of input.
func (SHA256Digester) Digest(_ context.Context, input []byte) ([DigestSize]byte, error) {
	return sha256.Sum256(input), nil
}

// Generate is the full pipeline for a single input: digest, then map.
// Empty or whitespace-only input yields (nil, nil) — an absent fingerprint,
// not an error. Provider failures surface as ErrDigestUnavailable.
func Generate(ctx context.Context, d Digester, input string) (*Config, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	sum, err := d.Digest(ctx, []byte(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDigestUnavailable, err)
	}
	return Map(sum[:])
}
