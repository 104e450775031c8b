package metascope

import (
	"io"
	"log/slog"
	"time"

	"github.com/openmeta/metascope/internal/catalog"
	"github.com/openmeta/metascope/internal/registry"
)

// Option configures an Engine or a single extraction request.
//
// Options use the functional options pattern. Options passed to New set
// engine defaults; options passed to Extract override them for one request.
//
// Example:
//
//	eng := metascope.New(metascope.WithPluginTimeout(5 * time.Second))
//	env, err := eng.Extract(ctx, "photo.jpg",
//	    metascope.WithTier(metascope.TierForensic),
//	    metascope.WithDisplayLevel(metascope.DisplayRaw),
//	)
type Option func(*options)

// options holds resolved configuration for a request.
type options struct {
	tier          Tier
	display       DisplayLevel
	pluginTimeout time.Duration
	concurrency   int
	catalog       *catalog.Catalog
	registry      *registry.Registry
	logger        *slog.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		tier:          TierFree,
		display:       DisplaySimple,
		pluginTimeout: 3 * time.Second,
		concurrency:   1,
		catalog:       nil, // engine falls back to the embedded catalog
		registry:      nil, // engine falls back to the process-wide registry
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithTier sets the caller's subscription tier for visibility filtering.
//
// Default is TierFree.
func WithTier(t Tier) Option {
	return func(o *options) {
		o.tier = t
	}
}

// WithDisplayLevel sets the requested display level.
//
// SIMPLE fields are always included; ADVANCED fields require at least
// DisplayAdvanced; RAW fields require DisplayRaw. Default is DisplaySimple.
func WithDisplayLevel(d DisplayLevel) Option {
	return func(o *options) {
		o.display = d
	}
}

// WithPluginTimeout bounds each plugin invocation.
//
// A plugin exceeding the timeout is abandoned and recorded as a failed
// run, identically to a plugin that returned an error. Default is 3s.
func WithPluginTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pluginTimeout = d
		}
	}
}

// WithConcurrency allows plugins for distinct formats to run in parallel,
// bounded by n goroutines.
//
// Plugins for the same format always run sequentially in registration
// order, and the merge step is deterministic regardless of completion
// order, so concurrency is purely an optimization. Default is 1
// (sequential).
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithCatalog replaces the embedded field catalog.
func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithRegistry replaces the process-wide plugin registry for this engine.
//
// Useful in tests and for embedders that assemble their own plugin set.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the structured logger used for plugin failures and
// catalog inventory gaps. Default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
