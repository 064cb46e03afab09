package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vertti/smoketest/pkg/check"
	"github.com/vertti/smoketest/pkg/config"
	"github.com/vertti/smoketest/pkg/logging"
	"github.com/vertti/smoketest/pkg/output"
	"github.com/vertti/smoketest/pkg/plan"
	"github.com/vertti/smoketest/pkg/suite"
)

// ErrCheckFailed is returned when a check or suite fails.
// main maps it to exit code 1 without printing it.
var ErrCheckFailed = errors.New("check failed")

// loadConfig resolves the configuration: defaults, then file, then
// environment, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, _, err := config.Resolve(wd, configFile, os.Getenv)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = timeoutSec
	}
	if flags.Changed("threshold") {
		cfg.PassThreshold = threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return logging.NewLogger(logging.Options{
		Level: logLevel,
		File:  logFile,
		RunID: uuid.NewString(),
	})
}

// runSuites runs the named suites (the configured defaults when empty),
// streaming each verdict, and returns ErrCheckFailed if any suite failed.
func runSuites(cmd *cobra.Command, names []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	w := cmd.OutOrStdout()
	suites, err := plan.Build(cfg, names, plan.Deps{
		Logger:   logger,
		OnResult: func(r check.Result) { output.FprintResult(w, r) },
	})
	if err != nil {
		return err
	}

	reports := make([]suite.Report, 0, len(suites))
	for i, s := range suites {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		output.FprintHeader(w, s)
		report := s.Run(cmd.Context())
		output.FprintSummary(w, report)
		reports = append(reports, report)
	}

	if suite.ExitCode(reports...) != 0 {
		return ErrCheckFailed
	}
	return nil
}

// runCheck executes a single check, prints the result, and returns
// ErrCheckFailed unless it passed. Warnings pass.
func runCheck(cmd *cobra.Command, c check.Checker) error {
	result := c.Run(cmd.Context())
	output.FprintResult(cmd.OutOrStdout(), result)

	if !result.Passed() {
		return ErrCheckFailed
	}
	return nil
}
