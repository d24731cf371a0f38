// Package errortracking forwards server-side failures to Sentry when a DSN is configured.
package errortracking

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/MediaProc/internal/config"
)

const flushTimeout = 2 * time.Second

// Reporter captures errors on its own hub. A nil Reporter is valid and does nothing.
type Reporter struct {
	hub *sentry.Hub
}

// Options configures a Reporter. Transport is only set by tests.
type Options struct {
	DSN         string
	Environment string
	Transport   sentry.Transport
}

// New returns a Reporter for opts, or nil when no DSN is configured.
func New(opts Options) (*Reporter, error) {
	if opts.DSN == "" {
		return nil, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Transport:   opts.Transport,
	})
	if err != nil {
		return nil, err
	}
	return &Reporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// FromConfig builds a Reporter from the sentry section of cfg, logging and
// disabling reporting when the DSN is invalid.
func FromConfig(cfg *config.Config) *Reporter {
	logger := config.GetLogger()
	r, err := New(Options{DSN: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment})
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid Sentry configuration, error reporting disabled")
		return nil
	}
	if r != nil {
		logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")
	}
	return r
}

// Capture sends err with the given tags.
func (r *Reporter) Capture(err error, tags map[string]string) {
	if r == nil || err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

// Flush waits for queued events to be delivered.
func (r *Reporter) Flush() bool {
	if r == nil {
		return true
	}
	return r.hub.Flush(flushTimeout)
}
