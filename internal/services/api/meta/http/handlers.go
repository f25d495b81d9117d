// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"holidays/internal/core/holidays"
	"holidays/internal/core/version"
	"holidays/internal/modkit/httpkit"
	"holidays/internal/modkit/swaggerkit"
)

// Catalog is satisfied by the holidays module port
type Catalog interface {
	EntityCount() int
	CacheStats() holidays.Stats
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Catalog     Catalog
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// Describe documents the routes mounted at prefix
func Describe(prefix string) {
	for path, summary := range map[string]string{
		"/health":  "Health check",
		"/ready":   "Readiness with catalogue and cache state",
		"/version": "Build and version info",
		"/service": "Service info and uptime",
	} {
		swaggerkit.Describe(swaggerkit.Op{Method: "GET", Path: prefix + path, Tag: "Meta", Summary: summary})
	}
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"holidays-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"catalog"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status   string          `json:"status" example:"ok"` // ok fail
	Checks   []ReadyCheck    `json:"checks"`
	Entities int             `json:"entities" example:"4"`
	Cache    *holidays.Stats `json:"cache,omitempty"`
	Now      string          `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"holidays-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) ready(_ *http.Request) (any, error) {
	out := ReadyResponse{Status: "ok", Now: time.Now().UTC().Format(time.RFC3339)}

	check := ReadyCheck{Name: "catalog", Status: "ok"}
	switch {
	case h.deps.Catalog == nil:
		check.Status = "fail"
		check.Error = "no catalogue wired"
	case h.deps.Catalog.EntityCount() == 0:
		check.Status = "fail"
		check.Error = "catalogue is empty"
	default:
		out.Entities = h.deps.Catalog.EntityCount()
		st := h.deps.Catalog.CacheStats()
		out.Cache = &st
	}
	if check.Status != "ok" {
		out.Status = "fail"
	}
	out.Checks = []ReadyCheck{check}
	return out, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
