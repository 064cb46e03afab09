package testutil

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
)

// MockHTTPClient is a test double for HTTP clients. It is safe for
// concurrent use when DoFunc is.
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  atomic.Int32
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls.Add(1)
	return m.DoFunc(req)
}

// MockResponse creates an http.Response with given status, body and headers.
func MockResponse(status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

// Respond returns a client that answers every request with the same response.
func Respond(status int, body string, header http.Header) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return MockResponse(status, body, header.Clone()), nil
		},
	}
}

// Routes returns a client that answers by request path and 404s elsewhere.
func Routes(bodies map[string]string) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			body, ok := bodies[req.URL.Path]
			if !ok {
				return MockResponse(http.StatusNotFound, "not found", nil), nil
			}
			return MockResponse(http.StatusOK, body, nil), nil
		},
	}
}

// Refused returns a client whose requests never reach a server.
func Refused() *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp " + req.URL.Host + ": connect: connection refused")
		},
	}
}

// ContainsDetail checks if any detail string contains the given substring.
func ContainsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}
