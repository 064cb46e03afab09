package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [suite...]",
	Short: "Run suites by name (default: the configured default suites)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuites(cmd, args)
	},
}

var frontendCmd = &cobra.Command{
	Use:   "frontend",
	Short: "Probe the frontend; passes when enough probes pass",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuites(cmd, []string{"frontend"})
	},
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Type-check backend and frontend and probe the frontend; any failure fails",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuites(cmd, []string{"quick"})
	},
}

func init() {
	rootCmd.AddCommand(runCmd, frontendCmd, quickCmd)
}
