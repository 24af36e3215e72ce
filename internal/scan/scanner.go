// Package scan searches indexed families of identifiers for fingerprints
// matching visual criteria: an axis target, an expression filter, or both.
// Candidate inputs are "<base>:<index>" over a contiguous index range, each
// mapped through the full digest pipeline, so a scan doubles as a bulk
// sensitivity probe over the mapper.
package scan

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/google/uuid"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
)

// EngineVersion tags scan results so stored hits can be traced back to the
// mapper contract that produced them.
const EngineVersion = "fp-1.0.0"

// TargetOp represents comparison operations for axis targets.
type TargetOp string

const (
	OpEqual        TargetOp = "eq"
	OpGreater      TargetOp = "gt"
	OpGreaterEqual TargetOp = "ge"
	OpLess         TargetOp = "lt"
	OpLessEqual    TargetOp = "le"
	OpBetween      TargetOp = "between"
	OpOutside      TargetOp = "outside"
)

// Request describes one scan. Axis targeting and the filter expression are
// each optional; when both are present a hit must satisfy both.
type Request struct {
	Base       string   `json:"base"`
	IndexStart uint64   `json:"index_start"`
	IndexEnd   uint64   `json:"index_end"`
	Axis       string   `json:"axis,omitempty"`
	TargetOp   TargetOp `json:"target_op,omitempty"`
	TargetVal  float64  `json:"target_val,omitempty"`
	TargetVal2 float64  `json:"target_val2,omitempty"` // for "between" and "outside"
	Tolerance  float64  `json:"tolerance,omitempty"`
	Filter     string   `json:"filter,omitempty"` // expr-lang expression over config fields
	Limit      int      `json:"limit,omitempty"`
	TimeoutMs  int      `json:"timeout_ms,omitempty"`
}

// Hit is a single matching fingerprint.
type Hit struct {
	Index  uint64              `json:"index"`
	Input  string              `json:"input"`
	Value  float64             `json:"value,omitempty"` // targeted axis value
	Config *fingerprint.Config `json:"config"`
}

// Summary contains aggregate statistics over the targeted axis.
type Summary struct {
	TotalEvaluated uint64  `json:"total_evaluated"`
	HitsFound      int     `json:"hits_found"`
	MinValue       float64 `json:"min_value"`
	MaxValue       float64 `json:"max_value"`
	MeanValue      float64 `json:"mean_value"`
	TimedOut       bool    `json:"timed_out,omitempty"`
}

// Result contains the complete scan outcome.
type Result struct {
	ID            string  `json:"id"`
	Hits          []Hit   `json:"hits"`
	Summary       Summary `json:"summary"`
	EngineVersion string  `json:"engine_version"`
	Echo          Request `json:"echo"`
}

// job is a contiguous batch of candidate indices.
type job struct {
	start, end uint64
}

// Scanner runs scans with one worker per CPU.
type Scanner struct {
	workerCount int
	digester    fingerprint.Digester
}

// NewScanner creates a scanner backed by the given digest provider.
func NewScanner(d fingerprint.Digester) *Scanner {
	return &Scanner{
		workerCount: runtime.GOMAXPROCS(0),
		digester:    d,
	}
}

// targetEvaluator checks axis values against the requested comparison with
// tolerance.
type targetEvaluator struct {
	op        TargetOp
	val1      float64
	val2      float64
	tolerance float64
}

func (te *targetEvaluator) matches(v float64) bool {
	switch te.op {
	case OpEqual:
		return abs(v-te.val1) <= te.tolerance
	case OpGreater:
		return v > te.val1+te.tolerance
	case OpGreaterEqual:
		return v >= te.val1-te.tolerance
	case OpLess:
		return v < te.val1-te.tolerance
	case OpLessEqual:
		return v <= te.val1+te.tolerance
	case OpBetween:
		return v >= te.val1-te.tolerance && v <= te.val2+te.tolerance
	case OpOutside:
		return v < te.val1-te.tolerance || v > te.val2+te.tolerance
	default:
		return false
	}
}

// Scan evaluates the request across the index range in parallel. The
// context cancels in-flight work; a per-request timeout is layered on when
// TimeoutMs is set.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	if req.IndexEnd < req.IndexStart {
		return nil, ErrInvalidRange
	}
	if req.TargetOp != "" {
		if _, ok := (&fingerprint.Config{}).Axis(req.Axis); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAxis, req.Axis)
		}
	}

	var program *vm.Program
	if req.Filter != "" {
		// Compiled once per scan; expr.Run is safe for concurrent use
		// with per-call environments.
		p, err := expr.Compile(req.Filter, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFilter, err)
		}
		program = p
	}

	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = 1e-9
	}
	evaluator := &targetEvaluator{
		op:        req.TargetOp,
		val1:      req.TargetVal,
		val2:      req.TargetVal2,
		tolerance: tolerance,
	}

	jobs := make(chan job, s.workerCount*2)
	hits := make(chan Hit, 1000)

	var totalEvaluated uint64
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		w := &worker{
			jobs:      jobs,
			hits:      hits,
			digester:  s.digester,
			req:       req,
			evaluator: evaluator,
			program:   program,
			evaluated: &totalEvaluated,
		}
		wg.Add(1)
		go w.run(ctx, &wg)
	}

	go generateJobs(ctx, jobs, req.IndexStart, req.IndexEnd)

	collector := &resultCollector{hits: hits, limit: req.Limit, evaluated: &totalEvaluated}
	result := collector.collect(ctx, &wg)

	result.ID = uuid.New().String()
	result.EngineVersion = EngineVersion
	result.Echo = req

	return result, nil
}

// worker maps candidate inputs to configurations and tests them against
// the target and filter.
type worker struct {
	jobs      <-chan job
	hits      chan<- Hit
	digester  fingerprint.Digester
	req       Request
	evaluator *targetEvaluator
	program   *vm.Program
	evaluated *uint64 // atomic counter
}

func (w *worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case j, ok := <-w.jobs:
			if !ok {
				return
			}
			w.processJob(ctx, j)
		case <-ctx.Done():
			return
		}
	}
}

func (w *worker) processJob(ctx context.Context, j job) {
	for idx := j.start; idx <= j.end; idx++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		input := w.req.Base + ":" + strconv.FormatUint(idx, 10)
		cfg, err := fingerprint.Generate(ctx, w.digester, input)
		if err != nil || cfg == nil {
			continue
		}
		atomic.AddUint64(w.evaluated, 1)

		value := 0.0
		if w.req.TargetOp != "" {
			v, ok := cfg.Axis(w.req.Axis)
			if !ok {
				continue
			}
			value = v
			if !w.evaluator.matches(v) {
				continue
			}
		}

		if w.program != nil {
			out, err := expr.Run(w.program, cfg.Env())
			if err != nil {
				continue
			}
			if pass, ok := out.(bool); !ok || !pass {
				continue
			}
		}

		hit := Hit{Index: idx, Input: input, Value: value, Config: cfg}
		select {
		case w.hits <- hit:
		case <-ctx.Done():
			return
		default:
			// Hit channel full; keep scanning rather than stalling the
			// worker behind a slow collector.
		}
	}
}

// generateJobs slices the index range into batches.
func generateJobs(ctx context.Context, jobs chan<- job, start, end uint64) {
	defer close(jobs)

	const batchSize = 1024

	for current := start; current <= end; {
		batchEnd := current + batchSize - 1
		if batchEnd > end || batchEnd < current {
			batchEnd = end
		}
		select {
		case jobs <- job{start: current, end: batchEnd}:
			if batchEnd == end {
				return
			}
			current = batchEnd + 1
		case <-ctx.Done():
			return
		}
	}
}

// resultCollector gathers hits and computes summary statistics.
type resultCollector struct {
	hits      <-chan Hit
	limit     int
	evaluated *uint64
}

func (rc *resultCollector) collect(ctx context.Context, wg *sync.WaitGroup) *Result {
	initialCap := 1000
	if rc.limit > 0 && rc.limit < initialCap {
		initialCap = rc.limit
	}

	collected := make([]Hit, 0, initialCap)
	values := make([]float64, 0, initialCap)
	var timedOut, limitReached bool

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	add := func(h Hit) {
		if limitReached {
			return
		}
		collected = append(collected, h)
		values = append(values, h.Value)
		if rc.limit > 0 && len(collected) >= rc.limit {
			limitReached = true
		}
	}

	collecting := true
	for collecting {
		select {
		case hit := <-rc.hits:
			add(hit)
		case <-ctx.Done():
			timedOut = true
			collecting = false
		case <-done:
			// Workers finished; drain whatever is buffered.
			for collecting {
				select {
				case hit := <-rc.hits:
					add(hit)
				default:
					collecting = false
				}
			}
		}
	}

	return &Result{
		Hits:    collected,
		Summary: rc.summarize(values, atomic.LoadUint64(rc.evaluated), timedOut),
	}
}

func (rc *resultCollector) summarize(values []float64, totalEvaluated uint64, timedOut bool) Summary {
	summary := Summary{
		TotalEvaluated: totalEvaluated,
		HitsFound:      len(values),
		TimedOut:       timedOut,
	}
	if len(values) == 0 {
		return summary
	}

	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	summary.MinValue = min
	summary.MaxValue = max
	summary.MeanValue = sum / float64(len(values))
	return summary
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
