// Package suite runs ordered sets of independent checks and reduces their
// results to a single verdict.
//
// Every registered check contributes exactly one result, whatever happens to
// it: failures, panics and cancellation are recorded and the run moves on.
package suite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vertti/smoketest/pkg/check"
)

type entry struct {
	name    string
	checker check.Checker
}

// Suite is an ordered set of named checks with a verdict policy.
type Suite struct {
	name     string
	policy   Policy
	parallel bool
	logger   *zap.Logger
	onResult func(check.Result)
	entries  []entry

	mu sync.Mutex // serializes onResult in parallel runs
}

// Option configures a Suite.
type Option func(*Suite)

// WithParallel runs checks concurrently. Results keep declaration order.
func WithParallel(parallel bool) Option {
	return func(s *Suite) { s.parallel = parallel }
}

// WithLogger sets the logger used for per-check debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Suite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnResult registers fn to be called with each result as soon as its
// check completes. In parallel runs calls follow completion order.
func WithOnResult(fn func(check.Result)) Option {
	return func(s *Suite) { s.onResult = fn }
}

// New creates an empty suite.
func New(name string, policy Policy, opts ...Option) *Suite {
	s := &Suite{
		name:   name,
		policy: policy,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a check. Checks run in the order they were added.
// name labels the result when the checker leaves its Name empty.
func (s *Suite) Add(name string, c check.Checker) *Suite {
	s.entries = append(s.entries, entry{name: name, checker: c})
	return s
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Policy returns the suite's verdict policy.
func (s *Suite) Policy() Policy { return s.policy }

// Len returns the number of registered checks.
func (s *Suite) Len() int { return len(s.entries) }

// Run executes every check and returns the report. It never stops early.
func (s *Suite) Run(ctx context.Context) Report {
	start := time.Now()
	results := make([]check.Result, len(s.entries))

	if s.parallel {
		var g errgroup.Group
		for i, e := range s.entries {
			g.Go(func() error {
				results[i] = s.runOne(ctx, e)
				s.notify(results[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, e := range s.entries {
			results[i] = s.runOne(ctx, e)
			s.notify(results[i])
		}
	}

	report := newReport(s.name, s.policy, results, time.Since(start))
	s.logger.Info("suite finished",
		zap.String("suite", s.name),
		zap.Stringer("policy", s.policy),
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed),
		zap.Int("warned", report.Warned),
		zap.Bool("ok", report.OK()),
		zap.Duration("duration", report.Duration),
	)
	return report
}

func (s *Suite) notify(r check.Result) {
	if s.onResult == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult(r)
}

func (s *Suite) runOne(ctx context.Context, e entry) (result check.Result) {
	log := s.logger.With(zap.String("suite", s.name), zap.String("check", e.name))
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error("check panicked", zap.Any("panic", p))
			result = check.Result{Name: e.name}
			result.Failf("panic: %v", p)
		}
		if result.Name == "" {
			result.Name = e.name
		}
		log.Debug("check finished",
			zap.String("status", string(result.Status)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(result.Err),
		)
	}()

	if err := ctx.Err(); err != nil {
		result = check.Result{Name: e.name}
		return result.Fail(fmt.Sprintf("skipped: %v", err), err)
	}

	log.Debug("check started")
	result = e.checker.Run(ctx)

	switch result.Status {
	case check.StatusPass, check.StatusFail, check.StatusWarn:
	default:
		result.Failf("check returned unknown status %q", result.Status)
	}
	return result
}
