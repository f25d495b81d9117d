package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts a subrouter under /api/{version}, applies any per-scope middleware,
// then invokes mount to register routes on that scoped router
//
// example:
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(cfg), func(api httpkit.Router) {
//	  holidays.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	ver := strings.Trim(version, "/")
	MountUnder(r, "/api/"+ver, mw, mount)
}

// APIV1 is the mount point of the v1 API
const APIV1 = "/api/v1"

// MountAPIV1 is a convenience for MountAPI with version v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, strings.TrimPrefix(APIV1, "/api/"), mw, mount)
}
