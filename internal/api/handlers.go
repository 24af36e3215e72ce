package api

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/render"
	"github.com/p4nthera115/fingerprint-erc8004/internal/scan"
)

const defaultSVGSize = 256

// handleFingerprint maps a single input to its visual configuration.
func (s *Server) handleFingerprint(w http.ResponseWriter, r *http.Request) {
	var req FingerprintRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateFingerprintRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	s.logger.Printf("fingerprint_request input_hash=%s", hashInput(req.Input))

	cfg, err := fingerprint.Generate(r.Context(), s.digester, req.Input)
	if err != nil {
		s.writeDigestError(w, err)
		return
	}

	resp := FingerprintResponse{
		Input:         req.Input,
		Config:        cfg,
		EngineVersion: EngineVersion,
	}
	if cfg != nil {
		sum, err := s.digester.Digest(r.Context(), []byte(req.Input))
		if err != nil {
			s.writeDigestError(w, err)
			return
		}
		resp.DigestHex = hex.EncodeToString(sum[:])
	}

	s.logger.Printf("fingerprint_completed input_hash=%s absent=%t", hashInput(req.Input), cfg == nil)

	s.writeJSON(w, http.StatusOK, resp)
}

// handleRenderSVG renders a fingerprint as a standalone SVG document.
func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	req, cfg, ok := s.decodeRender(w, r)
	if !ok {
		return
	}
	if cfg == nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "input is required for rendering", nil)
		return
	}

	size := req.Size
	if size == 0 {
		size = defaultSVGSize
	}

	grid := render.BuildGrid(cfg, req.Clock)
	doc := grid.SVG(size)

	s.logger.Printf(
		"render_svg_completed input_hash=%s size=%d accents=%d bytes=%d",
		hashInput(req.Input), size, grid.AccentCount(), len(doc),
	)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, doc)
}

// handleUniforms returns the shader uniform block for a fingerprint.
func (s *Server) handleUniforms(w http.ResponseWriter, r *http.Request) {
	req, cfg, ok := s.decodeRender(w, r)
	if !ok {
		return
	}

	resp := UniformsResponse{
		Input:         req.Input,
		EngineVersion: EngineVersion,
	}
	if cfg != nil {
		u := render.BuildUniforms(cfg, req.Clock)
		resp.Uniforms = &u
	}

	s.logger.Printf("render_uniforms_completed input_hash=%s absent=%t", hashInput(req.Input), cfg == nil)

	s.writeJSON(w, http.StatusOK, resp)
}

// decodeRender parses and validates a render request and runs the digest
// pipeline. A false return means a response has already been written.
func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, *fingerprint.Config, bool) {
	var req RenderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return req, nil, false
	}

	if err := ValidateRenderRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), map[string]any{
			"field_errors": fieldErrors(err),
		})
		return req, nil, false
	}

	cfg, err := fingerprint.Generate(r.Context(), s.digester, req.Input)
	if err != nil {
		s.writeDigestError(w, err)
		return req, nil, false
	}
	return req, cfg, true
}

// handleScan runs a batch scan over an indexed input family.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scan.Request

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateScanRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "scan request invalid", map[string]any{
			"field_errors": fieldErrors(err),
		})
		return
	}

	if req.TimeoutMs == 0 {
		req.TimeoutMs = 60_000
	}

	s.logger.Printf(
		"scan_request base_hash=%s index_range=%d-%d axis=%s target_op=%s filter_set=%t limit=%d timeout_ms=%d",
		hashInput(req.Base), req.IndexStart, req.IndexEnd, req.Axis, req.TargetOp, req.Filter != "", req.Limit, req.TimeoutMs,
	)

	start := time.Now()
	result, err := s.scanner.Scan(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		errType := ErrTypeInternal
		switch {
		case errors.Is(err, scan.ErrInvalidRange),
			errors.Is(err, scan.ErrUnknownAxis),
			errors.Is(err, scan.ErrBadFilter):
			status = http.StatusBadRequest
			errType = ErrTypeValidation
		case errors.Is(err, fingerprint.ErrDigestUnavailable):
			status = http.StatusServiceUnavailable
			errType = ErrTypeUnavailable
		}
		s.writeError(w, status, errType, err.Error(), map[string]any{
			"index_range": fmt.Sprintf("%d-%d", req.IndexStart, req.IndexEnd),
		})
		return
	}

	s.logger.Printf(
		"scan_completed id=%s hits_found=%d total_evaluated=%d duration_ms=%d timed_out=%t",
		result.ID, result.Summary.HitsFound, result.Summary.TotalEvaluated,
		time.Since(start).Milliseconds(), result.Summary.TimedOut,
	)

	s.writeJSON(w, http.StatusOK, ScanResponse{Result: result})
}

// handlePatterns lists the frozen pattern, geometry and border taxonomies
// plus the scannable axes.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	resp := PatternsResponse{
		Patterns:      fingerprint.PatternNames(),
		Geometries:    fingerprint.GeometryNames(),
		Borders:       fingerprint.BorderNames(),
		Axes:          fingerprint.AxisNames(),
		EngineVersion: EngineVersion,
	}

	s.logger.Printf("patterns_request patterns=%d geometries=%d axes=%d",
		len(resp.Patterns), len(resp.Geometries), len(resp.Axes))

	s.writeJSON(w, http.StatusOK, resp)
}

// handleDigestHash returns the hex digest of an input so clients can pin
// and later verify the exact bytes a fingerprint derives from.
func (s *Server) handleDigestHash(w http.ResponseWriter, r *http.Request) {
	var req DigestHashRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateDigestHashRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "digest request invalid", map[string]any{
			"field_errors": fieldErrors(err),
		})
		return
	}

	sum, err := s.digester.Digest(r.Context(), []byte(req.Input))
	if err != nil {
		s.writeDigestError(w, err)
		return
	}
	hashHex := hex.EncodeToString(sum[:])

	// The raw input never reaches the log.
	s.logger.Printf("digest_hash_completed hash=%s", hashHex)

	s.writeJSON(w, http.StatusOK, DigestHashResponse{
		Hash:          hashHex,
		EngineVersion: EngineVersion,
	})
}

// writeDigestError maps digest pipeline failures onto HTTP statuses.
func (s *Server) writeDigestError(w http.ResponseWriter, err error) {
	if errors.Is(err, fingerprint.ErrDigestUnavailable) {
		s.writeError(w, http.StatusServiceUnavailable, ErrTypeUnavailable, err.Error(), nil)
		return
	}
	s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
}
