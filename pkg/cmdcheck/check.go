package cmdcheck

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/vertti/smoketest/pkg/check"
)

// DefaultTimeout bounds a tool invocation. Type-checks and builds are slow.
const DefaultTimeout = 5 * time.Minute

// maxOutputLines is how many trailing output lines a failure reports.
const maxOutputLines = 5

// versionRegex matches version patterns like 1.2.3, v1.2, 18, etc.
var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// Check runs a tool such as a type-checker or a build and passes when it
// exits zero.
type Check struct {
	Name              string        // display name (default: "cmd: <command line>")
	Command           string        // executable to run (required)
	Args              []string      // arguments
	Dir               string        // working directory (default: current)
	Timeout           time.Duration // default: 5m
	Contains          string        // combined output must contain this string
	VersionConstraint string        // semver constraint on the first version in the output, e.g. ">= 18"
	Optional          bool          // report failures as WARN
	Runner            Runner        // injected for testing
}

// Run executes the tool invocation check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{Name: c.Name}
	if result.Name == "" {
		result.Name = "cmd: " + strings.TrimSpace(c.Command+" "+strings.Join(c.Args, " "))
	}
	return check.Soften(c.run(ctx, &result), c.Optional)
}

func (c *Check) run(ctx context.Context, result *check.Result) check.Result {
	if c.Command == "" {
		return result.Failf("command is required")
	}

	var constraint *semver.Constraints
	if c.VersionConstraint != "" {
		var err error
		constraint, err = semver.NewConstraint(c.VersionConstraint)
		if err != nil {
			return result.Failf("invalid version constraint %q: %v", c.VersionConstraint, err)
		}
	}

	runner := c.Runner
	if runner == nil {
		runner = &RealRunner{}
	}

	path, err := runner.LookPath(c.Command)
	if err != nil {
		return result.Failf("not found in PATH: %v", err)
	}
	result.AddDetailf("path: %s", path)
	if c.Dir != "" {
		result.AddDetailf("dir: %s", c.Dir)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := runner.RunCommandContext(ctx, c.Dir, c.Command, c.Args...)
	if err != nil {
		switch ctxErr := ctx.Err(); {
		case errors.Is(ctxErr, context.DeadlineExceeded):
			return result.Failf("timed out after %s", timeout)
		case errors.Is(ctxErr, context.Canceled):
			return result.Fail(fmt.Sprintf("skipped: %v", ctxErr), ctxErr)
		}
		for _, line := range tail(stderr, maxOutputLines) {
			result.AddDetailf("stderr: %s", line)
		}
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			return result.Fail(fmt.Sprintf("exit code %d", coder.ExitCode()), err)
		}
		return result.Fail(fmt.Sprintf("failed to run: %v", err), err)
	}

	output := stdout + stderr
	if c.Contains != "" && !strings.Contains(output, c.Contains) {
		return result.Failf("output does not contain %q", c.Contains)
	}

	if constraint != nil {
		if err := checkVersion(output, constraint, result); err != nil {
			return *result
		}
	}

	return result.Pass()
}

func checkVersion(output string, constraint *semver.Constraints, result *check.Result) error {
	raw := versionRegex.FindString(output)
	if raw == "" {
		err := fmt.Errorf("no version found in output")
		result.Fail("could not parse version from output", err)
		return err
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		result.Failf("could not parse version %q: %v", raw, err)
		return err
	}
	result.AddDetailf("version: %s", v)

	if ok, errs := constraint.Validate(v); !ok {
		err := fmt.Errorf("version %s does not satisfy %s", v, constraint)
		if len(errs) > 0 {
			err = fmt.Errorf("%w: %v", err, errs[0])
		}
		result.Fail(fmt.Sprintf("version %s does not satisfy %s", v, constraint), err)
		return err
	}
	return nil
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
