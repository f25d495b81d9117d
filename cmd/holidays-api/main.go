// @title         Holidays API
// @version       0.1.0
// @description   Read only endpoints for public holidays per country and subdivision

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"holidays/internal/core/holidays"
	"holidays/internal/platform/config"
	"holidays/internal/platform/logger"
	phttp "holidays/internal/platform/net/http"

	"holidays/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// engine reads HOLIDAYS_* (max span, labels, preload)
	engine, err := holidays.FromConfig(root, holidays.WithLogger(logger.Named("engine")))
	if err != nil {
		l.Panic().Err(err).Msg("holidays engine failed to load")
	}

	// http server (reads CORE_API_PORT and timeouts)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Engine:         engine,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
