// Package plan turns configured suites into runnable ones.
package plan

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vertti/smoketest/pkg/check"
	"github.com/vertti/smoketest/pkg/cmdcheck"
	"github.com/vertti/smoketest/pkg/config"
	"github.com/vertti/smoketest/pkg/filecheck"
	"github.com/vertti/smoketest/pkg/httpcheck"
	"github.com/vertti/smoketest/pkg/suite"
	"github.com/vertti/smoketest/pkg/tcpcheck"
)

// Deps carries the collaborators injected into built checks. Nil fields
// select the real implementations.
type Deps struct {
	HTTPClient httpcheck.HTTPClient
	Runner     cmdcheck.Runner
	FS         filecheck.FileSystem
	Dialer     tcpcheck.Dialer
	Logger     *zap.Logger
	OnResult   func(check.Result) // streams results as checks complete
}

// Build returns the suites named in names, in that order. An empty names
// selects cfg.Default.
func Build(cfg *config.Config, names []string, deps Deps) ([]*suite.Suite, error) {
	if len(names) == 0 {
		names = cfg.Default
	}

	suites := make([]*suite.Suite, 0, len(names))
	for _, name := range names {
		sc, ok := cfg.Suite(name)
		if !ok {
			return nil, fmt.Errorf("unknown suite %q", name)
		}
		s, err := BuildSuite(cfg, sc, deps)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// BuildSuite constructs one suite and its checks.
func BuildSuite(cfg *config.Config, sc config.SuiteConfig, deps Deps) (*suite.Suite, error) {
	policy := suite.Strict()
	if sc.Policy == config.PolicyThreshold {
		policy = suite.Threshold(cfg.ThresholdFor(sc))
	}

	s := suite.New(sc.Name, policy,
		suite.WithParallel(sc.Parallel),
		suite.WithLogger(deps.Logger),
		suite.WithOnResult(deps.OnResult),
	)
	for _, cc := range sc.Checks {
		c, err := BuildCheck(cfg, cc, deps)
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", sc.Name, err)
		}
		s.Add(cc.Name, c)
	}
	return s, nil
}

// BuildCheck constructs the checker for one configured check.
func BuildCheck(cfg *config.Config, cc config.CheckConfig, deps Deps) (check.Checker, error) {
	timeout := cfg.Timeout()
	if cc.TimeoutSeconds > 0 {
		timeout = time.Duration(cc.TimeoutSeconds) * time.Second
	}

	switch cc.Kind {
	case config.KindHTTP:
		return &httpcheck.Check{
			Name:     cc.Name,
			URL:      cfg.URLFor(cc),
			Accept:   cc.Accept,
			Timeout:  timeout,
			Contains: cc.Contains,
			Match:    cc.Match,
			Headers:  cc.Headers,
			JSONPath: cc.JSONPath,
			Optional: cc.Optional,
			Client:   deps.HTTPClient,
		}, nil
	case config.KindCmd:
		if len(cc.Run) == 0 {
			return nil, fmt.Errorf("check %q: run is required", cc.Name)
		}
		c := &cmdcheck.Check{
			Name:              cc.Name,
			Command:           cc.Run[0],
			Args:              cc.Run[1:],
			Dir:               cc.Dir,
			Contains:          cc.Contains,
			VersionConstraint: cc.VersionConstraint,
			Optional:          cc.Optional,
			Runner:            deps.Runner,
		}
		// tool runs keep their own long default unless configured per check
		if cc.TimeoutSeconds > 0 {
			c.Timeout = timeout
		}
		return c, nil
	case config.KindFile:
		return &filecheck.Check{
			Name:     cc.Name,
			Path:     cc.File,
			MinLines: cc.MinLines,
			Optional: cc.Optional,
			FS:       deps.FS,
		}, nil
	case config.KindTCP:
		return &tcpcheck.Check{
			Name:     cc.Name,
			Address:  cc.Address,
			Timeout:  timeout,
			Optional: cc.Optional,
			Dialer:   deps.Dialer,
		}, nil
	default:
		return nil, fmt.Errorf("check %q: unknown kind %q", cc.Name, cc.Kind)
	}
}
