package modkit

import (
	"net/http"

	phttp "holidays/internal/platform/net/http"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool
	// router hooks set via options and exposed to modules
	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	c := buildCfg{swaggerOn: true}
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r phttp.Router) phttp.Router { return r }
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		SwaggerOn: c.swaggerOn,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}
