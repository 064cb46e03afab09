package filecheck

import (
	"context"
	"fmt"
	"os"

	"github.com/vertti/smoketest/pkg/check"
)

// Check verifies that an expected file is present and reports its size in lines.
type Check struct {
	Name     string     // display name (default: "file: <path>")
	Path     string     // path to check
	MinLines int        // minimum line count (0 = no limit)
	Optional bool       // report failures as WARN
	FS       FileSystem // injected for testing
}

// Run executes the file presence check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{Name: c.Name}
	if result.Name == "" {
		result.Name = fmt.Sprintf("file: %s", c.Path)
	}
	return check.Soften(c.run(&result), c.Optional)
}

func (c *Check) run(result *check.Result) check.Result {
	if c.Path == "" {
		return result.Failf("path is required")
	}

	fsys := c.FS
	if fsys == nil {
		fsys = &RealFileSystem{}
	}

	info, err := fsys.Stat(c.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return result.Fail("not found", err)
		case os.IsPermission(err):
			return result.Fail("permission denied", err)
		default:
			return result.Failf("stat failed: %v", err)
		}
	}

	if info.IsDir() {
		result.AddDetail("type: directory")
		if c.MinLines > 0 {
			return result.Fail("expected file, got directory", fmt.Errorf("%s is a directory", c.Path))
		}
		return result.Pass()
	}

	lines, err := LineCount(fsys, c.Path)
	if err != nil {
		return result.Failf("read failed: %v", err)
	}
	result.AddDetailf("lines: %d", lines)

	if c.MinLines > 0 && lines < c.MinLines {
		return result.Failf("%d lines < minimum %d", lines, c.MinLines)
	}

	return result.Pass()
}
