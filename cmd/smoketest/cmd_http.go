package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vertti/smoketest/pkg/config"
	"github.com/vertti/smoketest/pkg/httpcheck"
)

var (
	httpStatus   []int
	httpContains string
	httpMatch    string
	httpHeaders  []string
	httpJSONPath string
	httpOptional bool
	httpInsecure bool
)

var httpCmd = &cobra.Command{
	Use:   "http <url|/path>",
	Short: "Probe a single HTTP endpoint; a /path is joined to the base URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runHTTPCheck,
}

func init() {
	httpCmd.Flags().IntSliceVar(&httpStatus, "status", []int{200}, "accepted HTTP status codes, can be repeated")
	httpCmd.Flags().StringVar(&httpContains, "contains", "", "response body must contain this string")
	httpCmd.Flags().StringVar(&httpMatch, "match", "", "response body must match this regex")
	httpCmd.Flags().StringSliceVar(&httpHeaders, "header", nil, "required response header (name:substring), can be repeated")
	httpCmd.Flags().StringVar(&httpJSONPath, "json-path", "", "JSON path that must exist (path or path=value)")
	httpCmd.Flags().BoolVar(&httpOptional, "optional", false, "report failures as warnings")
	httpCmd.Flags().BoolVar(&httpInsecure, "insecure", false, "skip TLS certificate verification")

	rootCmd.AddCommand(httpCmd)
}

func runHTTPCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := args[0]
	if strings.HasPrefix(target, "/") {
		target = cfg.URLFor(config.CheckConfig{Path: target})
	}

	c := &httpcheck.Check{
		URL:      target,
		Accept:   httpStatus,
		Timeout:  cfg.Timeout(),
		Contains: httpContains,
		Match:    httpMatch,
		Headers:  parseHeaders(httpHeaders),
		JSONPath: httpJSONPath,
		Optional: httpOptional,
		Insecure: httpInsecure,
	}
	return runCheck(cmd, c)
}

// parseHeaders converts ["key:value", ...] to map[string]string
func parseHeaders(headers []string) map[string]string {
	result := make(map[string]string)
	for _, h := range headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) == 2 {
			result[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return result
}
