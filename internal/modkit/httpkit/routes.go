package httpkit

import "net/http"

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountModule is the MountRoutes body shared by modules: prefix, middlewares,
// an optional subrouter wrap, then register
func MountModule(r Router, prefix string, mw []func(http.Handler) http.Handler, sub func(Router) Router, register func(Router)) {
	MountUnder(r, prefix, mw, func(rr Router) {
		if sub != nil {
			rr = sub(rr)
		}
		if register != nil {
			register(rr)
		}
	})
}
