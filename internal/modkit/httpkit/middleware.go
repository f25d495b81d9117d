package httpkit

import (
	"net/http"
	"time"

	"holidays/internal/platform/config"
	"holidays/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware for the versioned API,
// reading CORS_ORIGINS, CACHE_MAX_AGE, TIMEOUT and SLOW_REQUEST from cfg
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := append(middleware.Defaults(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		}),
		middleware.StripSlashes(),
		middleware.CacheControl(cfg.MayDuration("CACHE_MAX_AGE", time.Hour)),
	)
	if origins := cfg.MayCSV("CORS_ORIGINS", nil); len(origins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins, MaxAge: 300}))
	}
	return stack
}

// MetaStack is for probes and build info, which must never be cached
func MetaStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.NoCache()}
}
