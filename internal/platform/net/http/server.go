package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"holidays/internal/platform/config"
	"holidays/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server is chi behind a stdlib http.Server
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads PORT, READ_TIMEOUT, WRITE_TIMEOUT and SHUTDOWN_GRACE from cfg.
// opts receive the mux before any route is added.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", ":4000")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux:   m,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 30*time.Second),
		},
	}
}

// Router returns the platform router over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Handler exposes the mux, mostly for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then shuts down within the grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	log.Info().Dur("grace", s.grace).Msg("http shutting down")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
