package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "holidays/internal/platform/errors"
	pnet "holidays/internal/platform/net"
	"holidays/internal/platform/net/middleware"
)

func TestRecoverJSON_WritesEnvelope(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("calendar table corrupt")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-9", ""))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-9" {
		t.Fatalf("request id header missing")
	}
	var env pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID != "rid-9" || env.Error != "panic recovered" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecoverJSON_PassThrough(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rr.Code)
	}
}
