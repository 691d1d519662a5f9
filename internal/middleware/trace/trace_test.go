package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expensetracker/internal/log"
)

func TestMiddlewareAssignsRequestID(t *testing.T) {
	m := NewMiddleware()
	var seen string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request id = %q", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("header %q, context %q", rr.Header().Get(RequestIDHeader), seen)
	}
	if got := m.GetMetrics(); got.TotalRequests != 1 || got.FailedRequests != 0 {
		t.Fatalf("metrics = %+v", got)
	}
}

func TestMiddlewareKeepsClientRequestID(t *testing.T) {
	m := NewMiddleware()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodPost, "/undo", nil)
	req.Header.Set(RequestIDHeader, "req_client")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get(RequestIDHeader) != "req_client" {
		t.Fatalf("expected client request id to be echoed")
	}
	if got := m.GetMetrics(); got.FailedRequests != 1 {
		t.Fatalf("metrics = %+v", got)
	}
}

func TestMiddlewareAnnotatesRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := log.New(log.Config{Component: log.ComponentApp, Output: &buf})
	h := log.Middleware(base)(NewMiddleware().Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.FromContext(r.Context()).Info("handled")
		}),
	))

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set(RequestIDHeader, "req_1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"msg=handled", "HTTP request completed", "request_id=req_1", "component=http"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "component=unknown") {
		t.Errorf("request logger fell back to the default: %q", out)
	}
}
