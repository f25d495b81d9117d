package middleware

import (
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "holidays/internal/platform/errors"
	"holidays/internal/platform/logger"
	pnet "holidays/internal/platform/net"
	phttp "holidays/internal/platform/net/http"
)

// RecoverJSON converts panics into the JSON error envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			phttp.RespondError(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
