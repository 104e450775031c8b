// Package registry manages format-specific extractor plugins.
//
// Plugins register during package initialization (init functions), before
// any extraction request runs. Registration order is preserved per format
// and is the tie-break order the merge pass uses for duplicate field keys.
package registry

import (
	"context"
	"sync"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/types"
)

// Plugin is the capability contract every format decoder satisfies.
type Plugin interface {
	// Name identifies the plugin in envelopes and diagnostics.
	Name() string

	// Formats lists the format identifiers this plugin can decode.
	Formats() []types.Format

	// Extract decodes metadata from the input. Implementations must treat
	// the reader as read-only and may be invoked concurrently with other
	// plugins on the same reader.
	Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error)
}

// FieldCounter is an optional introspection hook reporting how many
// distinct fields a plugin can emit. Used for capacity planning and
// documentation, never for dispatch.
type FieldCounter interface {
	FieldCount() int
}

// Registry maps format identifiers to ordered plugin lists.
//
// The registry is append-only. It is normally populated once during init
// and read-only afterwards; the lock exists for the dynamic-registration
// case and costs one RLock per lookup.
type Registry struct {
	mu       sync.RWMutex
	byFormat map[types.Format][]Plugin
	order    []Plugin
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byFormat: make(map[types.Format][]Plugin)}
}

// Register appends a plugin under every format it declares.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, p)
	for _, f := range p.Formats() {
		r.byFormat[f] = append(r.byFormat[f], p)
	}
}

// Lookup returns the plugins registered for a format, in registration
// order. An unknown format returns an empty list, not an error.
func (r *Registry) Lookup(f types.Format) []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plugins := r.byFormat[f]
	out := make([]Plugin, len(plugins))
	copy(out, plugins)
	return out
}

// Plugins returns all registered plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.order))
	copy(out, r.order)
	return out
}

// defaultRegistry holds the process-wide plugin set populated from init().
var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a plugin to the process-wide registry.
// Called by plugin packages during initialization.
func Register(p Plugin) {
	defaultRegistry.Register(p)
}
