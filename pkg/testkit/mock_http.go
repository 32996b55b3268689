// Package testkit provides test doubles for outbound HTTP calls.
//
// MockTransport implements http.RoundTripper: it matches outgoing requests
// against registered stubs and returns synthetic responses instead of making
// real network calls. Install it on the shared client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("POST", "/v1/oauth2/token", 200, `{"access_token":"t","expires_in":3600}`)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// StubResponse is one canned response matched by method + URL fragment.
type StubResponse struct {
	Method     string
	URLPart    string // matched with strings.Contains against the full URL
	StatusCode int
	Body       string
	calls      int
	lastHeader http.Header
}

// MockTransport implements http.RoundTripper over a list of stubs.
// Stubs are matched in registration order; the first match wins.
type MockTransport struct {
	mu    sync.Mutex
	stubs []*StubResponse
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a canned response.
func (mt *MockTransport) Stub(method, urlPart string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &StubResponse{
		Method:     method,
		URLPart:    urlPart,
		StatusCode: status,
		Body:       body,
	})
	return mt
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.Method != "" && !strings.EqualFold(s.Method, req.Method) {
			continue
		}
		if !strings.Contains(req.URL.String(), s.URLPart) {
			continue
		}

		s.calls++
		s.lastHeader = req.Header.Clone()
		return &http.Response{
			StatusCode: s.StatusCode,
			Body:       io.NopCloser(strings.NewReader(s.Body)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    req,
		}, nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s (no matching stub)", req.Method, req.URL)
}

// Calls returns how many times the stub matching method+urlPart was hit.
func (mt *MockTransport) Calls(method, urlPart string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if strings.EqualFold(s.Method, method) && s.URLPart == urlPart {
			return s.calls
		}
	}
	return 0
}

// LastHeader returns the request headers from the most recent hit on the
// stub matching method+urlPart, or nil if it was never called.
func (mt *MockTransport) LastHeader(method, urlPart string) http.Header {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if strings.EqualFold(s.Method, method) && s.URLPart == urlPart {
			return s.lastHeader
		}
	}
	return nil
}

// AssertAllCalled returns an error per stub that was never triggered.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, s := range mt.stubs {
		if s.calls == 0 {
			errs = append(errs, fmt.Errorf("testkit: stub %s %q was never called", s.Method, s.URLPart))
		}
	}
	return errs
}
