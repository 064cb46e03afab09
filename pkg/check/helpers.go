package check

import (
	"fmt"
	"regexp"
)

// Pass sets the result to passed status.
func (r *Result) Pass() Result {
	r.Status = StatusPass
	r.Err = nil
	return *r
}

// Fail sets the result to failed status with a detail message.
func (r *Result) Fail(detail string, err error) Result {
	r.Status = StatusFail
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Failf sets the result to failed status with a formatted detail message.
func (r *Result) Failf(format string, args ...interface{}) Result {
	return r.Fail(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// Warn sets the result to warning status with a detail message.
func (r *Result) Warn(detail string, err error) Result {
	r.Status = StatusWarn
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Warnf sets the result to warning status with a formatted detail message.
func (r *Result) Warnf(format string, args ...interface{}) Result {
	return r.Warn(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// Soften downgrades a failure to a warning when optional is set.
// Passing results are returned unchanged.
func Soften(r Result, optional bool) Result {
	if optional && r.Status == StatusFail {
		r.Status = StatusWarn
		details := make([]string, 0, len(r.Details)+1)
		r.Details = append(append(details, r.Details...), "non-critical, reported as warning")
	}
	return r
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}

// CompileRegex compiles a regex pattern if non-empty, returning nil if pattern is empty.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
