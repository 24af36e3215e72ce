package api

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/scan"
)

// Request limits.
const (
	maxIndexRange = 10_000_000 // candidates per scan
	maxLimit      = 100_000
	maxTimeoutMs  = 300_000 // 5 minutes
	maxInputLen   = 4096
	maxSVGSize    = 4096
	minSVGSize    = 16
)

var validOps = []scan.TargetOp{
	scan.OpEqual, scan.OpGreater, scan.OpGreaterEqual,
	scan.OpLess, scan.OpLessEqual, scan.OpBetween, scan.OpOutside,
}

// ValidateScanRequest checks a scan request and returns every field error
// at once rather than stopping at the first.
func ValidateScanRequest(req *scan.Request) error {
	var errs error

	if req.Base == "" {
		errs = multierr.Append(errs, fmt.Errorf("base is required"))
	}
	if len(req.Base) > maxInputLen {
		errs = multierr.Append(errs, fmt.Errorf("base too long (max %d bytes)", maxInputLen))
	}

	if req.IndexEnd < req.IndexStart {
		errs = multierr.Append(errs, fmt.Errorf("index_end (%d) must be >= index_start (%d)", req.IndexEnd, req.IndexStart))
	} else if req.IndexEnd-req.IndexStart >= maxIndexRange {
		errs = multierr.Append(errs, fmt.Errorf("index range too large (max %d candidates)", maxIndexRange))
	}

	if req.TargetOp != "" {
		valid := false
		for _, op := range validOps {
			if req.TargetOp == op {
				valid = true
				break
			}
		}
		if !valid {
			names := make([]string, len(validOps))
			for i, op := range validOps {
				names[i] = string(op)
			}
			errs = multierr.Append(errs, fmt.Errorf("target_op must be one of: %s", strings.Join(names, ", ")))
		}

		if req.Axis == "" {
			errs = multierr.Append(errs, fmt.Errorf("axis is required when target_op is set"))
		} else if _, ok := (&fingerprint.Config{}).Axis(req.Axis); !ok {
			errs = multierr.Append(errs, fmt.Errorf("axis '%s' not found (see /patterns for the axis list)", req.Axis))
		}

		if req.TargetOp == scan.OpBetween || req.TargetOp == scan.OpOutside {
			if req.TargetVal > req.TargetVal2 {
				errs = multierr.Append(errs, fmt.Errorf("target_val must be <= target_val2 for '%s' operation", req.TargetOp))
			}
		}
	} else if req.Axis != "" {
		errs = multierr.Append(errs, fmt.Errorf("target_op is required when axis is set"))
	}

	if req.TargetOp == "" && req.Filter == "" {
		errs = multierr.Append(errs, fmt.Errorf("at least one of target_op or filter is required"))
	}

	if req.Limit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("limit must be >= 0"))
	}
	if req.Limit > maxLimit {
		errs = multierr.Append(errs, fmt.Errorf("limit too large (max %d)", maxLimit))
	}

	if req.TimeoutMs < 0 {
		errs = multierr.Append(errs, fmt.Errorf("timeout_ms must be >= 0"))
	}
	if req.TimeoutMs > maxTimeoutMs {
		errs = multierr.Append(errs, fmt.Errorf("timeout_ms too large (max %d ms)", maxTimeoutMs))
	}

	if req.Tolerance < 0 {
		errs = multierr.Append(errs, fmt.Errorf("tolerance must be >= 0"))
	}

	return errs
}

// ValidateRenderRequest checks a render request. A missing size is filled
// with the default by the handler, so only explicit out-of-range sizes
// fail here.
func ValidateRenderRequest(req *RenderRequest) error {
	var errs error

	if len(req.Input) > maxInputLen {
		errs = multierr.Append(errs, fmt.Errorf("input too long (max %d bytes)", maxInputLen))
	}
	if req.Size != 0 && (req.Size < minSVGSize || req.Size > maxSVGSize) {
		errs = multierr.Append(errs, fmt.Errorf("size must be between %d and %d", minSVGSize, maxSVGSize))
	}
	if req.Clock < 0 {
		errs = multierr.Append(errs, fmt.Errorf("clock must be >= 0"))
	}

	return errs
}

// ValidateFingerprintRequest checks a fingerprint request. An empty input
// is allowed: it maps to the absent state.
func ValidateFingerprintRequest(req *FingerprintRequest) error {
	if len(req.Input) > maxInputLen {
		return fmt.Errorf("input too long (max %d bytes)", maxInputLen)
	}
	return nil
}

// ValidateDigestHashRequest checks a digest hash request.
func ValidateDigestHashRequest(req *DigestHashRequest) error {
	var errs error

	if req.Input == "" {
		errs = multierr.Append(errs, fmt.Errorf("input is required"))
	}
	if len(req.Input) > maxInputLen {
		errs = multierr.Append(errs, fmt.Errorf("input too long (max %d bytes)", maxInputLen))
	}

	return errs
}

// fieldErrors flattens a multierr into a list of messages for the error
// context payload.
func fieldErrors(err error) []string {
	flat := multierr.Errors(err)
	out := make([]string, len(flat))
	for i, e := range flat {
		out[i] = e.Error()
	}
	return out
}
