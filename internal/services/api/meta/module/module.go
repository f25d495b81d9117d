// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"holidays/internal/core/version"
	modkit "holidays/internal/modkit"
	"holidays/internal/modkit/httpkit"
	str "holidays/internal/platform/strings"

	metahttp "holidays/internal/services/api/meta/http"
)

// Ports are what meta needs from other modules
type Ports struct {
	Catalog metahttp.Catalog
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs a meta module; pass modkit.WithPorts(Ports{...}) to report catalogue readiness
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithMiddlewares(httpkit.MetaStack()...),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	ports, _ := b.Ports.(Ports)
	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Catalog:     ports.Catalog,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.swaggerOn {
		metahttp.Describe(httpkit.APIV1 + m.Prefix())
	}
	httpkit.MountModule(r, m.Prefix(), m.mws, m.subrouter, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
