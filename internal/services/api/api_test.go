package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"holidays/internal/core/holidays"
	"holidays/internal/modkit/module"
	"holidays/internal/modkit/swaggerkit"
	"holidays/internal/platform/config"
	pnet "holidays/internal/platform/net"
	phttp "holidays/internal/platform/net/http"
	holidaysdomain "holidays/internal/services/api/holidays/domain"

	"github.com/go-chi/chi/v5"
)

func mounted(t *testing.T, swagger bool) phttp.Router {
	t.Helper()
	module.Reset()
	swaggerkit.Reset()
	t.Cleanup(func() { module.Reset(); swaggerkit.Reset() })

	cfg := config.FromMap(nil)
	e, err := holidays.FromConfig(cfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Config: cfg, Engine: e, EnableSwagger: swagger})
	return r
}

func get(t *testing.T, r phttp.Router, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: decode %q: %v", target, rec.Body.String(), err)
	}
	return rec, body
}

func TestMountServesModules(t *testing.T) {
	r := mounted(t, false)

	rec, body := get(t, r, "/api/v1/meta/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready status = %d", rec.Code)
	}
	data := body["data"].(map[string]any)
	if data["status"] != "ok" || data["entities"].(float64) != 4 {
		t.Fatalf("ready = %v", data)
	}
	if rec.Header().Get("Cache-Control") == "public, max-age=3600" {
		t.Fatalf("meta responses must not be cacheable")
	}
	if body["request_id"] == nil {
		t.Fatalf("request id missing")
	}

	rec, body = get(t, r, "/api/v1/holidays/GB/2024")
	if rec.Code != http.StatusOK || rec.Header().Get("ETag") == "" {
		t.Fatalf("holidays status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "public, max-age=3600" {
		t.Fatalf("holiday cache header = %q", rec.Header().Get("Cache-Control"))
	}
	if n := body["data"].(map[string]any)["count"].(float64); n != 8 {
		t.Fatalf("GB 2024 public days = %v", n)
	}

	_, body = get(t, r, "/api/v1/meta/ready")
	cache := body["data"].(map[string]any)["cache"].(map[string]any)
	if cache["cells"].(float64) < 1 {
		t.Fatalf("cache stats not reported: %v", cache)
	}

	var env pnet.Wire
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/holidays/XX/2024", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || rec.Code != http.StatusNotFound || env.Error == "" {
		t.Fatalf("unknown entity: %d %+v %v", rec.Code, env, err)
	}

	if got := module.Registered(); len(got) != 2 || got[0] != "holidays" || got[1] != "meta" {
		t.Fatalf("registered modules = %v", got)
	}
	if p, ok := module.PortsAs[holidaysdomain.CatalogPort]("holidays"); !ok || p.EntityCount() != 4 {
		t.Fatalf("holidays catalogue port not registered")
	}
	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("docs should be off, got %d", rec.Code)
	}
}

func TestMountSwaggerDocumentsRoutes(t *testing.T) {
	r := mounted(t, true)
	rec, spec := get(t, r, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("doc status = %d", rec.Code)
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/meta/health", "/holidays/entities", "/holidays/{entity}/{year}", "/holidays/query"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("path %s missing from %v", p, paths)
		}
	}
	year := paths["/holidays/{entity}/{year}"].(map[string]any)["get"].(map[string]any)
	if year["summary"] != "Holidays of one year" {
		t.Fatalf("summary = %v", year["summary"])
	}
}
