// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package logging provides structured logging tagged with the editing session.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Log formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// sessionHandler wraps a slog.Handler to add service, version and session
// attributes to every record.
type sessionHandler struct {
	handler slog.Handler
	service string
	version string
	session string
}

// Handle adds the session attributes to the log record.
func (h *sessionHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(
		slog.String("service", h.service),
		slog.String("version", h.version),
		slog.String("session_id", h.session),
	)

	//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
	return h.handler.Handle(ctx, r)
}

// Enabled returns true if the level is enabled.
func (h *sessionHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs returns a new handler with the given attributes.
func (h *sessionHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionHandler{
		handler: h.handler.WithAttrs(attrs),
		service: h.service,
		version: h.version,
		session: h.session,
	}
}

// WithGroup returns a new handler with the given group.
func (h *sessionHandler) WithGroup(name string) slog.Handler {
	return &sessionHandler{
		handler: h.handler.WithGroup(name),
		service: h.service,
		version: h.version,
		session: h.session,
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
	}
}

// Options configures Setup.
type Options struct {
	Service string
	Version string
	Format  string // "json" or "text"; defaults to "text"
	Level   slog.Level
	Session string // defaults to a new ULID
}

// Setup creates a configured slog.Logger.
// If w is nil, writes to os.Stderr.
func Setup(opts Options, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if opts.Session == "" {
		opts.Session = NewSessionID()
	}

	var baseHandler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
	}

	if opts.Format == FormatJSON {
		baseHandler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		baseHandler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(&sessionHandler{
		handler: baseHandler,
		service: opts.Service,
		version: opts.Version,
		session: opts.Session,
	})
}

// SetDefault sets up and installs the default logger.
func SetDefault(opts Options) *slog.Logger {
	logger := Setup(opts, nil)
	slog.SetDefault(logger)
	return logger
}

// NewSessionID returns a new session identifier.
func NewSessionID() string {
	return ulid.Make().String()
}
