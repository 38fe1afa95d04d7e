package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	AppName string `mapstructure:"app_name"`
}

// levelAliases maps spellings zerolog does not accept.
var levelAliases = map[string]zerolog.Level{
	"":        zerolog.InfoLevel,
	"warning": zerolog.WarnLevel,
	"off":     zerolog.Disabled,
}

// ParseLevel resolves a configured level name. Unknown names fall back to info.
func (c Config) ParseLevel() zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(c.Level))
	if lvl, ok := levelAliases[name]; ok {
		return lvl
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

var (
	mu     sync.RWMutex
	global = zerolog.New(os.Stderr).Level(zerolog.ErrorLevel).With().Timestamp().Logger()
	once   sync.Once
)

// NewWithWriter builds a logger writing to w. Pretty output uses the
// console writer.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(w).Level(cfg.ParseLevel()).With().Timestamp()
	if cfg.AppName != "" {
		ctx = ctx.Str(FieldApp, cfg.AppName)
	}
	return ctx.Logger()
}

// Init replaces the stderr error-only default with cfg and routes the
// standard library logger through it. Only the first call has effect.
func Init(cfg Config) {
	once.Do(func() {
		logger := NewWithWriter(cfg, os.Stderr)

		mu.Lock()
		global = logger
		mu.Unlock()

		stdlog.SetFlags(0)
		stdlog.SetOutput(logger.With().Str("source", "stdlog").Logger())
	})
}

// L returns the process logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
