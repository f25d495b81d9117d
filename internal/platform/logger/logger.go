// Package logger wraps zerolog with the service defaults and request-scoped fields
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"holidays/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw config view
func FromEnv() Options { return optionsFrom(raw.New()) }

func optionsFrom(rc raw.Conf) Options {
	rc = rc.Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "info")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "holidays"),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger; only the first call has effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

func build(opt Options) zerolog.Logger {
	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	for k, v := range opt.StaticFields {
		ctx = ctx.Str(k, v)
	}

	l := ctx.Logger()
	if opt.WithCaller {
		l = l.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"request_id"}
	keyEntity    = ctxKey{"entity"}
)

// WithRequest annotates ctx with the request id and the entity being queried
func WithRequest(ctx context.Context, reqID, entity string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if entity != "" {
		ctx = context.WithValue(ctx, keyEntity, entity)
	}
	return ctx
}

// C returns a child logger carrying the request fields found in ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyEntity).(string); s != "" {
		b = b.Str("entity", s)
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
