package http

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestLogger_LogsOutcome(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := log.New(buf, "", 0)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.RemoteAddr = "192.0.2.7:1234"
	rec := httptest.NewRecorder()

	RequestLogger(handler, logger).ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"method=POST", "path=/register", "status=201", "bytes=10", "ip=192.0.2.7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log, got %q", want, out)
		}
	}
	id := rec.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid request id, got %q", id)
	}
	if !strings.Contains(out, "id="+id) {
		t.Fatalf("expected request id in log, got %q", out)
	}
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	req.Header.Set(requestIDHeader, "edge-42")
	rec := httptest.NewRecorder()

	RequestLogger(handler, log.New(buf, "", 0)).ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "edge-42" {
		t.Fatalf("expected incoming id to be echoed, got %q", got)
	}
	if !strings.Contains(buf.String(), "status=200") {
		t.Fatalf("expected default status 200 in log, got %q", buf.String())
	}
}
