package swaggerkit

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"holidays/internal/core/version"
	phttp "holidays/internal/platform/net/http"
)

// Op documents one route; modules describe their routes from MountRoutes
type Op struct {
	Method  string
	Path    string // full chi pattern, e.g. /api/v1/holidays/{entity}/{year}
	Tag     string
	Summary string
	Query   []string
	Body    any // example request body for POST routes
}

// SpecMutator lets modules tweak the generated spec before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	ops      = map[string]Op{}
	mutators []SpecMutator
)

func opKey(method, path string) string { return strings.ToUpper(method) + " " + path }

// Describe records documentation for a route
func Describe(op Op) {
	mu.Lock()
	ops[opKey(op.Method, op.Path)] = op
	mu.Unlock()
}

// Register adds a spec mutator
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Reset clears descriptions and mutators for tests
func Reset() {
	mu.Lock()
	ops = map[string]Op{}
	mutators = nil
	mu.Unlock()
}

// Build walks the router and returns an OpenAPI 3.0 document for every route under prefix
func Build(r phttp.Router, prefix, title string) (map[string]any, error) {
	paths := map[string]any{}
	var keys []string
	err := r.Walk(func(method, route string) {
		if !strings.HasPrefix(route, prefix) || strings.HasSuffix(route, "/*") {
			return
		}
		route = strings.TrimSuffix(route, "/")
		keys = append(keys, opKey(method, route))
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	mu.RLock()
	defer mu.RUnlock()
	for _, k := range keys {
		method, route, _ := strings.Cut(k, " ")
		rel := strings.TrimPrefix(route, prefix)
		item, _ := paths[rel].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[rel] = item
		}
		item[strings.ToLower(method)] = operation(method, rel, ops[k])
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   title,
			"version": version.Info().Version,
		},
		"servers": []any{map[string]any{"url": prefix}},
		"paths":   paths,
	}
	ensureErrorResponseDefinition(spec)
	addDefaultError(spec)
	addDefaultBadRequest(spec)
	for _, m := range mutators {
		m(spec)
	}
	return spec, nil
}

func operation(method, rel string, op Op) map[string]any {
	tag := op.Tag
	if tag == "" {
		tag, _, _ = strings.Cut(strings.TrimPrefix(rel, "/"), "/")
	}
	var params []any
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params = append(params, map[string]any{
				"name":     strings.Trim(seg, "{}"),
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	for _, q := range op.Query {
		params = append(params, map[string]any{
			"name":   q,
			"in":     "query",
			"schema": map[string]any{"type": "string"},
		})
	}
	out := map[string]any{
		"tags":        []any{tag},
		"summary":     op.Summary,
		"operationId": strings.ToLower(method) + strings.NewReplacer("/", "_", "{", "", "}", "").Replace(rel),
		"responses": map[string]any{
			"200": map[string]any{
				"description": "OK",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
					},
				},
			},
		},
	}
	if len(params) > 0 {
		out["parameters"] = params
	}
	if op.Body != nil {
		out["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{"example": op.Body},
			},
		}
	}
	return out
}

// serveDocJSON builds the spec per request from the live router
func serveDocJSON(r phttp.Router, prefix, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		spec, err := Build(r, prefix, title)
		if err != nil {
			phttp.RespondError(w, req, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		phttp.JSON(w, http.StatusOK, spec)
	}
}

// ensureErrorResponseDefinition adds the envelope models if missing
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer", "format": "int32"},
				"status":      map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
				"data":        map[string]any{},
			},
			"required": []any{"status_code", "status"},
		}
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(description string, example map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

// eachOp visits every operation's responses map
func eachOp(spec map[string]any, fn func(responses map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			fn(responses)
		}
	}
}

// addDefaultError injects a 500 response where absent
func addDefaultError(spec map[string]any) {
	resp := errorResponse("Internal Server Error", map[string]any{
		"status_code": 500,
		"status":      "Internal Server Error",
		"code":        1,
		"error":       "panic recovered",
		"request_id":  "579f33bf50b1/abc-000001",
	})
	eachOp(spec, func(rs map[string]any) {
		if _, ok := rs["500"]; !ok {
			rs["500"] = resp
		}
	})
}

// addDefaultBadRequest injects a 400 shaped like the binder output where absent
func addDefaultBadRequest(spec map[string]any) {
	resp := errorResponse("Bad Request", map[string]any{
		"status_code": 400,
		"status":      "Bad Request",
		"code":        4,
		"error":       "view must be one of [all actual observed]",
		"field":       "view",
		"request_id":  "579f33bf50b1/abc-000001",
	})
	eachOp(spec, func(rs map[string]any) {
		if _, ok := rs["400"]; !ok {
			rs["400"] = resp
		}
	})
}
