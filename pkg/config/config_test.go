package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 3, cfg.PassThreshold)
	assert.Equal(t, []string{"quick"}, cfg.Default)
	require.NoError(t, cfg.Validate())

	frontend, ok := cfg.Suite("frontend")
	require.True(t, ok)
	assert.Equal(t, PolicyThreshold, frontend.Policy)
	assert.Len(t, frontend.Checks, 5)
	assert.Equal(t, 3, cfg.ThresholdFor(frontend))

	var required []string
	for _, c := range frontend.Checks {
		if !c.Optional {
			required = append(required, c.Name)
		}
	}
	assert.Equal(t, []string{"frontend responds", "root element served", "framework signature"}, required,
		"the threshold must exceed the number of optional probes")
	assert.Greater(t, cfg.ThresholdFor(frontend), len(frontend.Checks)-len(required))

	quick, ok := cfg.Suite("quick")
	require.True(t, ok)
	assert.Equal(t, PolicyStrict, quick.Policy)

	_, ok = cfg.Suite("missing")
	assert.False(t, ok)
}

func TestDefaultsAreIndependent(t *testing.T) {
	a := Defaults()
	a.Suites[0].Checks[0].Name = "changed"

	assert.NotEqual(t, "changed", Defaults().Suites[0].Checks[0].Name)
}

func TestURLFor(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:3000/"}

	assert.Equal(t, "http://localhost:3000", cfg.URLFor(CheckConfig{}))
	assert.Equal(t, "http://localhost:3000/service-worker.js", cfg.URLFor(CheckConfig{Path: "/service-worker.js"}))
	assert.Equal(t, "http://localhost:3000/manifest.json", cfg.URLFor(CheckConfig{Path: "manifest.json"}))
	assert.Equal(t, "http://api.local/health", cfg.URLFor(CheckConfig{URL: "http://api.local/health", Path: "/ignored"}))
}

func TestThresholdFor(t *testing.T) {
	cfg := &Config{PassThreshold: 3}

	assert.Equal(t, 3, cfg.ThresholdFor(SuiteConfig{}))
	assert.Equal(t, 1, cfg.ThresholdFor(SuiteConfig{Threshold: 1}))
}

func TestParse(t *testing.T) {
	data := `
base_url: http://localhost:5173
pass_threshold: 2
default: [frontend, monitoring]
suites:
  - name: frontend
    policy: threshold
    checks:
      - name: home
        kind: http
        contains: '<div id="app">'
      - name: manifest
        kind: http
        path: /manifest.json
        accept: [200, 304]
        optional: true
  - name: monitoring
    checks:
      - name: error monitor service
        kind: file
        file: backend/src/services/errorMonitor.ts
        min_lines: 20
      - name: api port
        kind: tcp
        address: localhost:4000
      - name: node version
        kind: cmd
        run: [node, --version]
        version_constraint: ">= 18"
        timeout_seconds: 10
`
	cfg, err := Parse([]byte(data))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:5173", cfg.BaseURL)
	assert.Equal(t, 5, cfg.TimeoutSeconds, "unset values keep defaults")
	assert.Equal(t, 2, cfg.PassThreshold)
	assert.Equal(t, []string{"frontend", "monitoring"}, cfg.Default)

	// frontend replaced, quick kept, monitoring appended
	require.Len(t, cfg.Suites, 3)
	frontend, _ := cfg.Suite("frontend")
	assert.Len(t, frontend.Checks, 2)
	assert.Equal(t, []int{200, 304}, frontend.Checks[1].Accept)
	assert.True(t, frontend.Checks[1].Optional)

	_, ok := cfg.Suite("quick")
	assert.True(t, ok)

	monitoring, _ := cfg.Suite("monitoring")
	require.Len(t, monitoring.Checks, 3)
	assert.Equal(t, 20, monitoring.Checks[0].MinLines)
	assert.Equal(t, "localhost:4000", monitoring.Checks[1].Address)
	assert.Equal(t, []string{"node", "--version"}, monitoring.Checks[2].Run)
	assert.Equal(t, ">= 18", monitoring.Checks[2].VersionConstraint)
	assert.Equal(t, 10, monitoring.Checks[2].TimeoutSeconds)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("suites: {name: ["))
	assert.Error(t, err)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		BaseURL:        "localhost:3000",
		TimeoutSeconds: 0,
		PassThreshold:  -1,
		Default:        []string{"nightly"},
		Suites: []SuiteConfig{
			{Name: "a", Policy: "lenient"},
			{Name: "a"},
			{Name: "b", Policy: PolicyThreshold, Threshold: 4, Checks: []CheckConfig{
				{Name: "x", Kind: KindHTTP},
			}},
			{Name: "c", Checks: []CheckConfig{
				{Kind: "ftp"},
				{Name: "cmd", Kind: KindCmd},
				{Name: "file", Kind: KindFile},
				{Name: "tcp", Kind: KindTCP},
				{Name: "url", Kind: KindHTTP, URL: "/relative"},
			}},
			{},
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"base_url",
		"timeout_seconds must be positive",
		"pass_threshold must not be negative",
		`default suite "nightly"`,
		`unknown policy "lenient"`,
		`suite "a" defined twice`,
		"threshold 4 exceeds its 1 checks",
		"check #1 has no name",
		`unknown kind "ftp"`,
		"run is required",
		"file is required",
		"address is required",
		"is not absolute",
		"suite without a name",
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %q", want, msg)
	}
	assert.GreaterOrEqual(t, len(multierr.Errors(err)), 14)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "no overrides",
			env:  map[string]string{},
			want: Config{BaseURL: DefaultBaseURL, TimeoutSeconds: 5, PassThreshold: 3},
		},
		{
			name: "all overrides",
			env: map[string]string{
				EnvBaseURL:       "http://staging:3000",
				EnvTimeout:       "10",
				EnvPassThreshold: "4",
			},
			want: Config{BaseURL: "http://staging:3000", TimeoutSeconds: 10, PassThreshold: 4},
		},
		{
			name:    "bad timeout",
			env:     map[string]string{EnvTimeout: "soon"},
			wantErr: true,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{EnvTimeout: "0"},
			wantErr: true,
		},
		{
			name:    "negative threshold",
			env:     map[string]string{EnvPassThreshold: "-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BaseURL: DefaultBaseURL, TimeoutSeconds: 5, PassThreshold: 3}
			err := cfg.ApplyEnv(func(k string) string { return tt.env[k] })
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}
