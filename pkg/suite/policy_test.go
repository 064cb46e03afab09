package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertti/smoketest/pkg/check"
)

func results(statuses ...check.Status) []check.Result {
	out := make([]check.Result, len(statuses))
	for i, s := range statuses {
		out[i] = check.Result{Name: string(s), Status: s}
	}
	return out
}

const (
	pass = check.StatusPass
	fail = check.StatusFail
	warn = check.StatusWarn
)

func TestEvaluateStrict(t *testing.T) {
	tests := []struct {
		name     string
		statuses []check.Status
		want     bool
	}{
		{"all pass", []check.Status{pass, pass, pass}, true},
		{"single fail", []check.Status{pass, fail, pass}, false},
		{"fail last", []check.Status{pass, pass, fail}, false},
		{"warnings do not block", []check.Status{pass, warn}, true},
		{"empty suite", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(Strict(), results(tt.statuses...)))
		})
	}
}

func TestEvaluateThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		statuses  []check.Status
		want      bool
	}{
		{"two pass one fail two warn", 3, []check.Status{pass, pass, fail, warn, warn}, true},
		{"exactly at threshold", 3, []check.Status{pass, pass, pass, fail, fail}, true},
		{"below threshold", 3, []check.Status{pass, pass, fail, fail, fail}, false},
		{"warnings count as passed", 3, []check.Status{warn, warn, warn, fail, fail}, true},
		{"all fail", 3, []check.Status{fail, fail, fail, fail, fail}, false},
		{"zero threshold", 0, []check.Status{fail}, true},
		{"threshold above suite size", 6, []check.Status{pass, pass, pass, pass, pass}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(Threshold(tt.threshold), results(tt.statuses...)))
		})
	}
}

func TestEvaluateThresholdIgnoresOrder(t *testing.T) {
	// every rotation of the same multiset gives the same verdict
	base := []check.Status{pass, fail, fail, warn, fail}
	for shift := range base {
		rotated := append(append([]check.Status{}, base[shift:]...), base[:shift]...)
		assert.True(t, Evaluate(Threshold(2), results(rotated...)), "rotation %d", shift)
		assert.False(t, Evaluate(Threshold(3), results(rotated...)), "rotation %d", shift)
	}
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "strict", Strict().String())
	assert.Equal(t, "threshold 3", Threshold(3).String())
}
