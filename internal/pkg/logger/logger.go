package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"coupon-service/internal/pkg/config"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New builds the service logger and installs it as the slog default.
func New(cfg config.LogConfig, format Format) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, format)
}

func NewWithWriter(w io.Writer, cfg config.LogConfig, format Format) *slog.Logger {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h).With("service", "coupon-service")
	slog.SetDefault(l)
	return l
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
