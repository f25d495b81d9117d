package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pnet "holidays/internal/platform/net"
	"holidays/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestAccessLogZerolog_PassThroughStatusAndBody(t *testing.T) {
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/holidays/GB/2024", nil)
	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected status 304 got %d", rr.Code)
	}
}

func TestAccessLogZerolog_SlowMarkDoesNotAffectResponse(t *testing.T) {
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Microsecond)
		_, _ = io.WriteString(w, "slow")
	})

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slow", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "slow" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestAccessLogZerolog_RequestIDReachesHandler(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		_, _ = w.Write([]byte("hi"))
		_, _ = w.Write([]byte("there"))
	})
	h := chimw.RequestID(middleware.AccessLogZerolog(middleware.AccessLogOptions{})(next))

	req := httptest.NewRequest(http.MethodGet, "/bytes", nil)
	req.Header.Set("X-Request-Id", "rid-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "rid-42" {
		t.Fatalf("request id = %q", seen)
	}
	if rr.Body.String() != "hithere" {
		t.Fatalf("expected concatenated body got %q", rr.Body.String())
	}
}
