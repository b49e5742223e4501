package logger

import (
	"context"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level       string
	Pretty      bool
	ServiceName string
}

var (
	global zerolog.Logger
	once   sync.Once
)

func init() {
	// логгер по умолчанию до вызова Init
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// New создает настроенный zerolog.Logger
func New(cfg Config) zerolog.Logger {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	w := out
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	if cfg.ServiceName != "" {
		l = l.With().Str(FieldService, cfg.ServiceName).Logger()
	}
	return l
}

// Init инициализирует глобальный логгер и перенаправляет в него стандартный log
func Init(cfg Config) {
	once.Do(func() {
		global = New(cfg)

		stdlog.SetFlags(0)
		stdlog.SetOutput(global.With().Str("source", "stdlog").Logger())
	})
}

// L возвращает глобальный логгер
func L() *zerolog.Logger {
	return &global
}

type ctxKey struct{}

// WithLogger кладет логгер в контекст
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// Ctx достает логгер из контекста, иначе возвращает глобальный
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return &l
	}
	return L()
}

func ParseLevel(s string) zerolog.Level {
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
	default:
		return zerolog.InfoLevel
	}
}
