// Package svcctx carries core services through context.Context so that
// deep call paths (the classifier, the PDF extractor) don't need their
// own plumbing.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/screenplaykit/screenplay/internal/config"
)

// Services holds the services that flow through context. Components
// extract what they need via the individual XFrom extractors.
type Services struct {
	Logger *slog.Logger
	Config *config.Config
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LoggerFrom extracts the logger from context. Returns nil if absent.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// ConfigFrom extracts the configuration from context. Returns nil if absent.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}
