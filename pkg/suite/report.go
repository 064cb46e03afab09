package suite

import (
	"time"

	"github.com/vertti/smoketest/pkg/check"
)

// Report is the outcome of one suite run. Results are in declaration order.
type Report struct {
	Suite    string
	Policy   Policy
	Results  []check.Result
	Passed   int // PASS and WARN
	Failed   int
	Warned   int // WARN only
	Duration time.Duration
}

func newReport(name string, policy Policy, results []check.Result, d time.Duration) Report {
	r := Report{Suite: name, Policy: policy, Results: results, Duration: d}
	for _, res := range results {
		switch {
		case res.Status == check.StatusWarn:
			r.Passed++
			r.Warned++
		case res.Passed():
			r.Passed++
		default:
			r.Failed++
		}
	}
	return r
}

// OK reports whether the suite passed under its policy.
func (r Report) OK() bool {
	return Evaluate(r.Policy, r.Results)
}

// ExitCode returns 0 when the suite passed and 1 otherwise.
func (r Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// ExitCode combines several reports: 0 only if all of them passed.
func ExitCode(reports ...Report) int {
	for _, r := range reports {
		if r.ExitCode() != 0 {
			return 1
		}
	}
	return 0
}
