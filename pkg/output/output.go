package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"

	"github.com/vertti/smoketest/pkg/check"
	"github.com/vertti/smoketest/pkg/suite"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	bold   = "\033[1m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor turns off ANSI colors for all subsequent output.
func DisableColor() {
	green, red, yellow, dim, bold, reset = "", "", "", "", "", ""
}

// detailIndent lines details up under the check name: all tags are 6 wide.
const detailIndent = "       "

// FprintResult outputs a check result with colored status to w.
func FprintResult(w io.Writer, r check.Result) {
	switch r.Status {
	case check.StatusPass:
		_, _ = fmt.Fprintf(w, "%s[PASS]%s %s\n", green, reset, r.Name)
	case check.StatusWarn:
		_, _ = fmt.Fprintf(w, "%s[WARN]%s %s\n", yellow, reset, r.Name)
	default:
		_, _ = fmt.Fprintf(w, "%s[FAIL]%s %s\n", red, reset, r.Name)
	}
	for _, d := range r.Details {
		_, _ = fmt.Fprintf(w, "%s%s\n", detailIndent, formatLabel(d))
	}
}

// FprintHeader prints the banner shown before a suite runs.
func FprintHeader(w io.Writer, s *suite.Suite) {
	_, _ = fmt.Fprintf(w, "%s==> %s%s %s(%d checks, %s)%s\n", bold, s.Name(), reset, dim, s.Len(), s.Policy(), reset)
}

// FprintReport prints every result of a report followed by its summary.
func FprintReport(w io.Writer, r suite.Report) {
	for _, res := range r.Results {
		FprintResult(w, res)
	}
	FprintSummary(w, r)
}

// FprintSummary prints the counts and verdict of a report.
func FprintSummary(w io.Writer, r suite.Report) {
	verdict := green + "PASS" + reset
	if !r.OK() {
		verdict = red + "FAIL" + reset
	}
	_, _ = fmt.Fprintf(w, "%s: %d passed, %d failed, %d warnings %s(%s)%s %s\n",
		r.Suite, r.Passed, r.Failed, r.Warned, dim, r.Policy, reset, verdict)
}

// formatLabel dims the "label:" prefix of a detail line.
func formatLabel(s string) string {
	label, rest, ok := strings.Cut(s, ":")
	if !ok || dim == "" {
		return s
	}
	return dim + label + ":" + reset + rest
}
