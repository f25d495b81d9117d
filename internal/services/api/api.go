// Package api provides the HTTP API for the application
package api

import (
	"holidays/internal/core/holidays"
	"holidays/internal/platform/config"
	"holidays/internal/platform/logger"
	phttp "holidays/internal/platform/net/http"

	"holidays/internal/modkit"
	"holidays/internal/modkit/httpkit"
	"holidays/internal/modkit/module"
	"holidays/internal/modkit/swaggerkit"

	holidaysdomain "holidays/internal/services/api/holidays/domain"
	holidaysmod "holidays/internal/services/api/holidays/module"
	metamod "holidays/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Engine         *holidays.Engine
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:    opt.Logger,
		Cfg:    opt.Config,
		Engine: opt.Engine,
	}

	// holidays registers first: meta reports readiness through its catalogue port
	hol := holidaysmod.New(deps)
	module.Register(hol)
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Catalog: module.MustPortsAs[holidaysdomain.CatalogPort](hol.Name()),
	}))
	module.Register(meta)

	mods := []module.Module{meta, hol}
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	deps.Logger().Info().Strs("modules", module.Registered()).Msg("api modules mounted")

	swaggerkit.Mount(r, opt.EnableSwagger, httpkit.APIV1, "Holidays API")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	if err := r.Walk(func(method, route string) {
		deps.Logger().Debug().Str("method", method).Str("route", route).Msg("route mounted")
	}); err != nil {
		deps.Logger().Warn().Err(err).Msg("route walk failed")
	}
}
