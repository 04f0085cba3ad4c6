// Package testutil provides a fake AINative API server and client factories
// shared by the package tests.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/ainative/ainative-go/pkg/ainative"
)

// RecordedRequest is one request captured by the fake API server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// JSON decodes the captured request body.
func (r RecordedRequest) JSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		t.Fatalf("failed to parse request body %q: %v", r.Body, err)
	}
	return m
}

// StubResponse is a canned response served by the fake API server.
type StubResponse struct {
	Status int
	Body   string
	Header map[string]string
}

// APIServer is a fake AINative API: it records every request and serves
// queued responses in order, falling back to 200 {} once the queue is empty.
type APIServer struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  []RecordedRequest
	responses []StubResponse
}

// NewAPIServer starts a fake API server that is closed when the test ends.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()

	s := &APIServer{}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *APIServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})

	resp := StubResponse{Status: http.StatusOK, Body: "{}"}
	if len(s.responses) > 0 {
		resp = s.responses[0]
		s.responses = s.responses[1:]
	}
	s.mu.Unlock()

	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	io.WriteString(w, resp.Body)
}

// URL returns the server's base URL.
func (s *APIServer) URL() string {
	return s.server.URL
}

// Respond queues a 200 response with the given JSON body.
func (s *APIServer) Respond(body string) {
	s.RespondStatus(http.StatusOK, body)
}

// RespondStatus queues a response with the given status and JSON body.
func (s *APIServer) RespondStatus(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, StubResponse{Status: status, Body: body})
}

// RespondFull queues a complete stub response including headers.
func (s *APIServer) RespondFull(resp StubResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
}

// Requests returns a copy of all captured requests.
func (s *APIServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of requests served.
func (s *APIServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request, failing the test if none was
// made.
func (s *APIServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("no requests were made to the fake API server")
	}
	return s.requests[len(s.requests)-1]
}

// Client returns an ainative client pointed at the fake server, with retries
// disabled and a short timeout.
func (s *APIServer) Client(t *testing.T) *ainative.Client {
	t.Helper()

	client, err := ainative.NewClient(ainative.Config{
		APIKey:     "test-key",
		BaseURL:    s.server.URL,
		MaxRetries: 1,
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}
