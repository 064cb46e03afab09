package httpcheck

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusUnreachable is reported in place of an HTTP status when no response
// was received (connection refused, DNS failure, timeout).
const StatusUnreachable = 0

// MaxBodyBytes bounds how much of a response body a probe reads.
const MaxBodyBytes = 1 << 20

// HTTPClient abstracts HTTP requests for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPClient uses the real net/http package.
// Redirects are never followed.
type RealHTTPClient struct {
	Timeout  time.Duration
	Insecure bool
}

// Do executes an HTTP request.
func (c *RealHTTPClient) Do(req *http.Request) (*http.Response, error) {
	transport := &http.Transport{}
	if c.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // intentional for --insecure flag
	}

	// Like curl, a 3xx is reported as-is
	client := &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return client.Do(req)
}

// Response is what a probe observed.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// FormatStatus renders a status code the way curl's %{http_code} does,
// so an unreachable target prints as "000".
func FormatStatus(code int) string {
	return fmt.Sprintf("%03d", code)
}

// Probe performs a single GET against url. There are no retries. On
// transport failure the returned Response carries StatusUnreachable and
// the error is non-nil. The caller bounds the call through ctx.
func Probe(ctx context.Context, client HTTPClient, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Response{StatusCode: StatusUnreachable}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Response{StatusCode: StatusUnreachable}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Header: resp.Header}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       string(body),
	}, nil
}
