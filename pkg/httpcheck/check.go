package httpcheck

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/smoketest/pkg/check"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 5 * time.Second

// Check verifies that an HTTP endpoint serves the expected application.
type Check struct {
	Name     string            // display name (default: "http: <url>")
	URL      string            // target URL (required)
	Accept   []int             // accepted statuses (default: 200)
	Timeout  time.Duration     // request timeout (default: 5s)
	Contains string            // response body must contain this string
	Match    string            // response body must match this regex
	Headers  map[string]string // header name -> required substring, e.g. framework signature
	JSONPath string            // "path=expectedValue" or just "path"
	Optional bool              // report failures as WARN
	Insecure bool              // skip TLS verification
	Client   HTTPClient        // injected for testing
}

// Run executes the probe and classifies its outcome.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{Name: c.Name}
	if result.Name == "" {
		result.Name = "http: " + c.URL
	}
	return check.Soften(c.run(ctx, &result), c.Optional)
}

func (c *Check) run(ctx context.Context, result *check.Result) check.Result {
	if c.URL == "" {
		return result.Failf("URL is required")
	}
	parsedURL, err := url.Parse(c.URL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return result.Failf("invalid URL: %s", c.URL)
	}

	re, err := check.CompileRegex(c.Match)
	if err != nil {
		return result.Failf("invalid match pattern: %v", err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	accept := c.Accept
	if len(accept) == 0 {
		accept = []int{200}
	}

	client := c.Client
	if client == nil {
		client = &RealHTTPClient{Timeout: timeout, Insecure: c.Insecure}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := Probe(ctx, client, c.URL)
	if resp.StatusCode == StatusUnreachable {
		result.AddDetailf("status %s", FormatStatus(StatusUnreachable))
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return result.Failf("timed out after %s", timeout)
		}
		return result.Fail(fmt.Sprintf("unreachable: %v", err), err)
	}
	if err != nil {
		return result.Fail(err.Error(), err)
	}

	if !slices.Contains(accept, resp.StatusCode) {
		return result.Failf("status %d, expected %s", resp.StatusCode, formatAccept(accept))
	}
	result.AddDetailf("status %d", resp.StatusCode)

	for _, name := range sortedKeys(c.Headers) {
		want := c.Headers[name]
		got := resp.Header.Get(name)
		if got == "" {
			return result.Failf("header %s missing", name)
		}
		if !strings.Contains(got, want) {
			return result.Failf("header %s: %q does not contain %q", name, got, want)
		}
		result.AddDetailf("header %s: %s", name, got)
	}

	if c.Contains != "" && !strings.Contains(resp.Body, c.Contains) {
		return result.Failf("response body does not contain %q", c.Contains)
	}

	if re != nil && !re.MatchString(resp.Body) {
		return result.Failf("response body does not match %q", c.Match)
	}

	if c.JSONPath != "" {
		path, expectedValue, hasExpectedValue := parseJSONPath(c.JSONPath)
		jsonResult := gjson.Get(resp.Body, path)
		if !jsonResult.Exists() {
			return result.Failf("JSON path %q not found", path)
		}
		if hasExpectedValue && jsonResult.String() != expectedValue {
			return result.Failf("JSON path %q: got %q, expected %q", path, jsonResult.String(), expectedValue)
		}
	}

	return result.Pass()
}

// parseJSONPath parses "path=value" or "path" format.
func parseJSONPath(jsonPath string) (path, expectedValue string, hasExpectedValue bool) {
	if idx := strings.Index(jsonPath, "="); idx != -1 {
		return jsonPath[:idx], jsonPath[idx+1:], true
	}
	return jsonPath, "", false
}

func formatAccept(accept []int) string {
	parts := make([]string, len(accept))
	for i, code := range accept {
		parts[i] = strconv.Itoa(code)
	}
	return strings.Join(parts, " or ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
