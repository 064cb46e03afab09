package main

import (
	"github.com/spf13/cobra"

	"github.com/vertti/smoketest/pkg/filecheck"
	"github.com/vertti/smoketest/pkg/output"
	"github.com/vertti/smoketest/pkg/suite"
)

var (
	fileMinLines int
	fileOptional bool
)

var fileCmd = &cobra.Command{
	Use:   "file <path>...",
	Short: "Verify that files exist and report their line counts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFileCheck,
}

func init() {
	fileCmd.Flags().IntVar(&fileMinLines, "min-lines", 0, "minimum number of lines per file")
	fileCmd.Flags().BoolVar(&fileOptional, "optional", false, "report missing files as warnings")

	rootCmd.AddCommand(fileCmd)
}

func runFileCheck(cmd *cobra.Command, args []string) error {
	s := suite.New("files", suite.Strict())
	for _, path := range args {
		s.Add(path, &filecheck.Check{Path: path, MinLines: fileMinLines, Optional: fileOptional})
	}

	report := s.Run(cmd.Context())
	output.FprintReport(cmd.OutOrStdout(), report)

	if !report.OK() {
		return ErrCheckFailed
	}
	return nil
}
