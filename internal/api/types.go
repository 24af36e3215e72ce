package api

import (
	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/render"
	"github.com/p4nthera115/fingerprint-erc8004/internal/scan"
)

// EngineVersion is surfaced in responses so clients can pin the mapper
// contract version they rendered against.
const EngineVersion = scan.EngineVersion

// Error type identifiers.
const (
	ErrTypeValidation  = "validation_error"
	ErrTypeUnavailable = "digest_unavailable"
	ErrTypeInternal    = "internal_error"
)

// ErrorResponse is the structured error payload.
type ErrorResponse struct {
	Type    string         `json:"type"`
	Message string         `json:"error"`
	Context map[string]any `json:"context,omitempty"`
}

// FingerprintRequest asks for the configuration of a single input.
type FingerprintRequest struct {
	Input string `json:"input"`
}

// FingerprintResponse carries the mapped configuration. Config is null
// when the input is empty or whitespace-only: an absent fingerprint is a
// valid state, not an error.
type FingerprintResponse struct {
	Input         string              `json:"input"`
	DigestHex     string              `json:"digest_hex,omitempty"`
	Config        *fingerprint.Config `json:"config"`
	EngineVersion string              `json:"engine_version"`
}

// RenderRequest asks for a rendered artifact of a single input.
type RenderRequest struct {
	Input string  `json:"input"`
	Size  int     `json:"size,omitempty"`  // SVG pixel size, default 256
	Clock float64 `json:"clock,omitempty"` // animation time in seconds
}

// UniformsResponse carries the shader uniform block.
type UniformsResponse struct {
	Input         string           `json:"input"`
	Uniforms      *render.Uniforms `json:"uniforms"`
	EngineVersion string           `json:"engine_version"`
}

// PatternsResponse lists the frozen taxonomies.
type PatternsResponse struct {
	Patterns      []string `json:"patterns"`
	Geometries    []string `json:"geometries"`
	Borders       []string `json:"borders"`
	Axes          []string `json:"axes"`
	EngineVersion string   `json:"engine_version"`
}

// DigestHashRequest asks for the raw digest of an input.
type DigestHashRequest struct {
	Input string `json:"input"`
}

// DigestHashResponse carries the digest in hex.
type DigestHashResponse struct {
	Hash          string `json:"hash"`
	EngineVersion string `json:"engine_version"`
}

// ScanResponse wraps a scan result.
type ScanResponse struct {
	*scan.Result
}
