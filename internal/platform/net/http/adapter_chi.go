package http

import (
	"net/http"

	perr "holidays/internal/platform/errors"
	pnet "holidays/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router, root or sub, to Router
type chiRouter struct{ r chi.Router }

// AdaptChi adapts a chi router to Router. Unmatched paths and methods answer
// with the error envelope; mounted subrouters inherit both handlers.
func AdaptChi(r chi.Router) Router {
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
	return chiRouter{r: r}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, r, perr.Newf(perr.ErrorCodeNotFound, "no route for %s", r.URL.Path))
}

// methodNotAllowed keeps the 405 status, which no error code maps to
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_, body := pnet.Error(perr.Newf(perr.ErrorCodeInvalidArgument, "method %s not allowed", r.Method), pnet.RequestID(r.Context()))
	body.StatusCode, body.Status = http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed)
	JSON(w, http.StatusMethodNotAllowed, body)
}

func (c chiRouter) Get(p string, h Handler)  { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Post(p string, h Handler) { c.r.Method(http.MethodPost, p, http.HandlerFunc(h)) }
func (c chiRouter) Head(p string, h Handler) { c.r.Method(http.MethodHead, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Walk(fn func(method, route string)) error {
	return chi.Walk(c.r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		fn(method, route)
		return nil
	})
}

func (c chiRouter) Mux() http.Handler { return c.r }
