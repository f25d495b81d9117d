// Package http provides the holidays endpoints
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"
	"strings"

	"holidays/internal/modkit/httpkit"
	"holidays/internal/modkit/swaggerkit"
	perr "holidays/internal/platform/errors"
	pnet "holidays/internal/platform/net"
	"holidays/internal/services/api/holidays/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// etagSpace namespaces the name-based ETags of holiday responses
var etagSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("holidays/etag"))

// Register mounts holidays endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/entities", h.entities)
	httpkit.PostJSON(r, "/query", h.query)
	httpkit.PostJSON(r, "/search", h.search)
	httpkit.GetQuery(r, "/{entity}/date/{date}", h.onDate)
	httpkit.GetQuery(r, "/{entity}/between", h.between)
	httpkit.GetQuery(r, "/{entity}/next", h.next)
	httpkit.GetQuery(r, "/{entity}/{year}", h.year)
}

// Describe documents the routes mounted at prefix
func Describe(prefix string) {
	filters := []string{"subdivisions", "categories"}
	for _, op := range []swaggerkit.Op{
		{Method: "GET", Path: "/entities", Summary: "Catalogue entities with categories and subdivisions"},
		{Method: "POST", Path: "/query", Summary: "Holidays of a year span", Body: domain.QueryInput{Entity: "GB", From: 2024, To: 2025, View: "observed"}},
		{Method: "POST", Path: "/search", Summary: "Holidays whose name contains a term", Body: domain.SearchInput{QueryInput: domain.QueryInput{Entity: "DE", From: 2024}, Name: "einheit"}},
		{Method: "GET", Path: "/{entity}/date/{date}", Summary: "Holiday names and working-day status of one date", Query: filters},
		{Method: "GET", Path: "/{entity}/between", Summary: "Holidays dated within a range", Query: append([]string{"from", "to", "view"}, filters...)},
		{Method: "GET", Path: "/{entity}/next", Summary: "First recognised holiday on or after a date", Query: append([]string{"from"}, filters...)},
		{Method: "GET", Path: "/{entity}/{year}", Summary: "Holidays of one year", Query: append([]string{"view"}, filters...)},
	} {
		op.Tag = "Holidays"
		op.Path = prefix + op.Path
		swaggerkit.Describe(op)
	}
}

type handlers struct{ svc domain.ServicePort }

// scoped records the entity on the request logger and returns it
func scoped(r *stdhttp.Request) (*stdhttp.Request, string) {
	entity := chi.URLParam(r, "entity")
	return r.WithContext(pnet.WithRequest(r.Context(), "", entity)), entity
}

// tagged wraps out with an ETag and answers 304 when the client already holds it
func tagged(r *stdhttp.Request, out any) (any, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode response")
	}
	tag := `"` + uuid.NewSHA1(etagSpace, b).String() + `"`
	if matchETag(r.Header.Get("If-None-Match"), tag) {
		return httpkit.NotModified().WithHeader("ETag", tag), nil
	}
	return httpkit.OK(out).WithHeader("ETag", tag), nil
}

func matchETag(header, tag string) bool {
	for _, c := range strings.Split(header, ",") {
		c = strings.TrimPrefix(strings.TrimSpace(c), "W/")
		if c == "*" || c == tag {
			return true
		}
	}
	return false
}

func (h *handlers) entities(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Entities(r.Context())
	if err != nil {
		return nil, err
	}
	return tagged(r, out)
}

func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	r = r.WithContext(pnet.WithRequest(r.Context(), "", in.Entity))
	out, err := h.svc.Query(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return tagged(r, out)
}

func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	r = r.WithContext(pnet.WithRequest(r.Context(), "", in.Entity))
	out, err := h.svc.Search(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return tagged(r, out)
}

func (h *handlers) year(r *stdhttp.Request, in domain.YearQuery) (any, error) {
	r, entity := scoped(r)
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return nil, perr.WithField(perr.Validationf("year must be an integer"), "year")
	}
	out, err := h.svc.Year(r.Context(), entity, year, in)
	if err != nil {
		return nil, err
	}
	return tagged(r, out)
}

func (h *handlers) onDate(r *stdhttp.Request, in domain.DateQuery) (any, error) {
	r, entity := scoped(r)
	return h.svc.OnDate(r.Context(), entity, chi.URLParam(r, "date"), in)
}

func (h *handlers) between(r *stdhttp.Request, in domain.BetweenQuery) (any, error) {
	r, entity := scoped(r)
	out, err := h.svc.Between(r.Context(), entity, in)
	if err != nil {
		return nil, err
	}
	return tagged(r, out)
}

func (h *handlers) next(r *stdhttp.Request, in domain.NextQuery) (any, error) {
	r, entity := scoped(r)
	return h.svc.Next(r.Context(), entity, in)
}
