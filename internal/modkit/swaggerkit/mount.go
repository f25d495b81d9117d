// Package swaggerkit serves an OpenAPI document built from the live router and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "holidays/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the spec for routes under prefix at /api/docs/doc.json and the UI at /api/docs/
func Mount(r phttp.Router, enabled bool, prefix, title string) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(r, prefix, title))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
