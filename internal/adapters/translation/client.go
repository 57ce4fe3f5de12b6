package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response is kept in errors
const maxErrorBody = 512

// Option customizes a provider adapter.
type Option func(*httpSettings)

type httpSettings struct {
	client *http.Client
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *httpSettings) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the client timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *httpSettings) {
		if timeout > 0 {
			s.client = &http.Client{Timeout: timeout}
		}
	}
}

func newHTTPSettings(opts []Option) httpSettings {
	s := httpSettings{client: &http.Client{Timeout: defaultHTTPTimeout}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// HTTPStatusError is returned when a provider answers with a non-2xx status.
type HTTPStatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s request: http %d: %s", e.Provider, e.StatusCode, strings.TrimSpace(e.Body))
}

type request struct {
	provider string
	method   string
	url      string
	headers  map[string]string
	body     interface{}
}

// do sends req and decodes a JSON response into out
func (s httpSettings) do(ctx context.Context, req request, out interface{}) error {
	var body io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s request: encode body: %w", req.provider, err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return fmt.Errorf("%s request: new request: %w", req.provider, err)
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s request: %w", req.provider, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s request: read body: %w", req.provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(payload)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return &HTTPStatusError{Provider: req.provider, StatusCode: resp.StatusCode, Body: snippet}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%s request: decode response: %w", req.provider, err)
	}
	return nil
}
