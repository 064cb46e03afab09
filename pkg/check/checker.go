package check

import "context"

// Checker is implemented by all check types.
// Each check validates one aspect of the target and returns a Result.
// Implementations must not panic on ordinary failures and must return
// exactly one Result per call.
//
// Implementations:
//   - httpcheck.Check: probes an HTTP endpoint
//   - cmdcheck.Check: runs a tool such as a type-checker or build
//   - filecheck.Check: verifies file presence and line count
//   - tcpcheck.Check: tests TCP connectivity
type Checker interface {
	Run(ctx context.Context) Result
}

// CheckerFunc adapts an ordinary function to a Checker.
type CheckerFunc func(ctx context.Context) Result

// Run calls f(ctx).
func (f CheckerFunc) Run(ctx context.Context) Result {
	return f(ctx)
}
