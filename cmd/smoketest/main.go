package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vertti/smoketest/pkg/output"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

var (
	configFile string
	baseURL    string
	timeoutSec int
	threshold  int
	noColor    bool
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "smoketest",
	Short: "Smoke-test a running app and its toolchain",
	Long: "Smoketest runs suites of independent checks (HTTP probes, tool invocations, " +
		"file presence, TCP reachability) and exits non-zero when a suite fails its policy.\n\n" +
		"Without arguments it runs the default suites.",
	Version:           Version,
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuites(cmd, nil)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to config file (default: search for .smoketest.yaml up from current directory)")
	flags.StringVar(&baseURL, "base-url", "", "target base URL (default http://localhost:3000)")
	flags.IntVar(&timeoutSec, "timeout", 0, "per-probe timeout in seconds (default 5)")
	flags.IntVar(&threshold, "threshold", 0, "minimum passed checks for threshold suites (default 3)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringVar(&logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write JSON diagnostics to a rotating log file instead of stderr")
}

func applyGlobalFlags(cmd *cobra.Command, args []string) error {
	if noColor {
		output.DisableColor()
	}
	return nil
}
