package main

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[string]string
	}{
		{
			name:    "empty input",
			headers: nil,
			want:    map[string]string{},
		},
		{
			name:    "framework signature",
			headers: []string{"X-Powered-By:Next.js"},
			want:    map[string]string{"X-Powered-By": "Next.js"},
		},
		{
			name:    "multiple headers",
			headers: []string{"Server:nginx", "Content-Type:text/html"},
			want: map[string]string{
				"Server":       "nginx",
				"Content-Type": "text/html",
			},
		},
		{
			name:    "header with spaces around colon",
			headers: []string{"X-Powered-By : Express"},
			want:    map[string]string{"X-Powered-By": "Express"},
		},
		{
			name:    "header with multiple colons in value",
			headers: []string{"Link:<http://example.com:8080>"},
			want:    map[string]string{"Link": "<http://example.com:8080>"},
		},
		{
			name:    "invalid header without colon ignored",
			headers: []string{"InvalidHeader", "Valid:Header"},
			want:    map[string]string{"Valid": "Header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseHeaders(tt.headers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseHeaders() = %v, want %v", got, tt.want)
			}
		})
	}
}
