package suite

import (
	"fmt"

	"github.com/vertti/smoketest/pkg/check"
)

// Mode selects how a suite's results are reduced to a verdict.
type Mode string

const (
	// ModeStrict fails the suite on any single FAIL.
	ModeStrict Mode = "strict"
	// ModeThreshold passes the suite when enough checks passed.
	ModeThreshold Mode = "threshold"
)

// Policy decides whether a suite passed.
type Policy struct {
	Mode      Mode
	Threshold int // minimum passed checks, ModeThreshold only
}

// Strict returns a policy that fails on any FAIL result.
func Strict() Policy {
	return Policy{Mode: ModeStrict}
}

// Threshold returns a policy that passes when at least n checks passed.
func Threshold(n int) Policy {
	return Policy{Mode: ModeThreshold, Threshold: n}
}

func (p Policy) String() string {
	if p.Mode == ModeThreshold {
		return fmt.Sprintf("threshold %d", p.Threshold)
	}
	return string(ModeStrict)
}

// Evaluate applies p to results. WARN counts as passed under both modes:
// strict passes iff no result is FAIL, threshold passes iff the number of
// PASS and WARN results is at least p.Threshold. Order does not matter.
func Evaluate(p Policy, results []check.Result) bool {
	passed, failed := 0, 0
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}

	if p.Mode == ModeThreshold {
		return passed >= p.Threshold
	}
	return failed == 0
}
