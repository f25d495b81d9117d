package middleware

import (
	"compress/flate"
	"fmt"
	"net/http"
	"time"

	pstrings "holidays/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID attaches or propagates X-Request-ID and stores it on context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP sets RemoteAddr to the upstream IP based on X-Forwarded-For headers
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache sets headers to disable client and proxy caching
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress wraps chi's compressor. level usually flate.DefaultCompression or flate.BestSpeed
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// StripSlashes strips a trailing slash from the request path
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }


// CacheControl marks successful GET and HEAD responses as publicly cacheable
// for maxAge unless the handler set Cache-Control itself. 0 passes through
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second))
	return func(next http.Handler) http.Handler {
		if maxAge <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&cacheWriter{ResponseWriter: w, value: value}, r)
		})
	}
}

type cacheWriter struct {
	http.ResponseWriter
	value string
	wrote bool
}

func (cw *cacheWriter) WriteHeader(code int) {
	if !cw.wrote {
		cw.wrote = true
		h := cw.Header()
		if code < 300 && h.Get("Cache-Control") == "" {
			h.Set("Cache-Control", cw.value)
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cacheWriter) Write(b []byte) (int, error) {
	if !cw.wrote {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors with the read-only defaults of this API
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "HEAD", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(
			o.AllowedHeaders,
			[]string{
				"Accept",
				"Content-Type",
				"If-None-Match",
				"X-Request-ID",
			},
		),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"ETag", "X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the base chain for the API: ids, panics as JSON, timeout, gzip
func Defaults() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RealIP(),
		RequestID(),
		RecoverJSON,
		Timeout(60 * time.Second),
		Compress(flate.DefaultCompression),
	}
}
