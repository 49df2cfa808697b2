package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGeneratesAndExposes(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("handler saw no request id")
	}
	if got := rec.Header().Get(HeaderRequestID); got != seen {
		t.Fatalf("response header %q, handler saw %q", got, seen)
	}
}

func TestRequestIDKeepsClientID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "cliente-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "cliente-123" {
		t.Fatalf("handler saw %q, want the client's id", seen)
	}
	if got := rec.Header().Get(HeaderRequestID); got != "cliente-123" {
		t.Fatalf("response header %q, want echo of the client's id", got)
	}
}

func TestGetRequestIDOutsideChain(t *testing.T) {
	if got := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("got %q, want empty outside the middleware", got)
	}
}
