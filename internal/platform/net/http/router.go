package http

import "net/http"

// Handler is the platform handler type used everywhere
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Head(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Walk visits every registered route
	Walk(fn func(method, route string)) error

	Mux() http.Handler
}
