package check

// Status represents the outcome of a check.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "http: http://localhost:3000", "cmd: backend typecheck"
	Status  Status   // PASS, FAIL or WARN
	Details []string // human-readable details
	Err     error    // underlying error for failures and warnings
}

// OK returns true if the check passed cleanly.
func (r Result) OK() bool {
	return r.Status == StatusPass
}

// Passed returns true for PASS and WARN. A warning never blocks a suite.
func (r Result) Passed() bool {
	return r.Status == StatusPass || r.Status == StatusWarn
}
