// Package module wires the holidays endpoints into the API using modkit
package module

import (
	"net/http"

	modkit "holidays/internal/modkit"
	"holidays/internal/modkit/httpkit"
	str "holidays/internal/platform/strings"
	hhttp "holidays/internal/services/api/holidays/http"
	hsvc "holidays/internal/services/api/holidays/service"
)

// Module implements the holidays module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc hsvc.Service
}

// New constructs the holidays module; deps.Engine is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("holidays"), modkit.WithPrefix("/holidays")}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       hsvc.New(deps.Engine),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		hhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.swaggerOn {
		hhttp.Describe(httpkit.APIV1 + m.Prefix())
	}
	httpkit.MountModule(r, m.Prefix(), m.mws, m.subrouter, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
