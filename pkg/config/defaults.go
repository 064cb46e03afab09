package config

// Built-in values used when nothing else is configured.
const (
	DefaultBaseURL        = "http://localhost:3000"
	DefaultTimeoutSeconds = 5
	DefaultPassThreshold  = 3
)

// RootMarker is the element a client-rendered frontend mounts into.
const RootMarker = `id="root"`

// Defaults returns the built-in configuration: a threshold frontend probe
// suite and a strict composite "quick" suite. Only the secondary assets of
// the frontend suite are optional, so the threshold gates on the probes
// that identify the application.
func Defaults() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		PassThreshold:  DefaultPassThreshold,
		Default:        []string{"quick"},
		Suites: []SuiteConfig{
			{
				Name:   "frontend",
				Policy: PolicyThreshold,
				Checks: []CheckConfig{
					{Name: "frontend responds", Kind: KindHTTP},
					{Name: "root element served", Kind: KindHTTP, Contains: RootMarker},
					{Name: "framework signature", Kind: KindHTTP, Headers: map[string]string{"X-Powered-By": "Next.js"}},
					{Name: "service worker", Kind: KindHTTP, Path: "/service-worker.js", Accept: []int{200, 304}, Optional: true},
					{Name: "web manifest", Kind: KindHTTP, Path: "/manifest.json", Accept: []int{200, 304}, JSONPath: "name", Optional: true},
				},
			},
			{
				Name:   "quick",
				Policy: PolicyStrict,
				Checks: []CheckConfig{
					{Name: "backend typecheck", Kind: KindCmd, Run: []string{"npx", "tsc", "--noEmit"}, Dir: "backend"},
					{Name: "frontend typecheck", Kind: KindCmd, Run: []string{"npx", "tsc", "--noEmit"}, Dir: "frontend"},
					{Name: "frontend responds", Kind: KindHTTP},
				},
			},
		},
	}
}
