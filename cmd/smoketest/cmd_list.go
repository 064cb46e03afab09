package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vertti/smoketest/pkg/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured suites",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range cfg.Suites {
		policy := config.PolicyStrict
		if s.Policy == config.PolicyThreshold {
			policy = fmt.Sprintf("threshold %d", cfg.ThresholdFor(s))
		}
		marker := " "
		if slices.Contains(cfg.Default, s.Name) {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s %s\t%s\t%d checks\n", marker, s.Name, policy, len(s.Checks))
	}
	return tw.Flush()
}
