package metascope

import (
	"github.com/openmeta/metascope/internal/registry"
)

// Plugin is the capability contract every format decoder satisfies.
// Re-exported from internal/registry so external decoders can implement it.
type Plugin = registry.Plugin

// FieldCounter is an optional introspection hook reporting how many
// distinct fields a plugin can emit. Used for capacity planning only.
type FieldCounter = registry.FieldCounter

// Registry is an alias to registry.Registry.
type Registry = registry.Registry

// NewRegistry creates an empty plugin registry, for callers that want an
// isolated plugin set instead of the process-wide default.
func NewRegistry() *Registry {
	return registry.New()
}

// RegisterPlugin adds a plugin to the process-wide registry.
//
// Registration normally happens from a plugin package's init function,
// before any extraction request runs.
func RegisterPlugin(p Plugin) {
	registry.Register(p)
}

// RegisteredPlugins returns the process-wide plugin set in registration
// order.
func RegisteredPlugins() []Plugin {
	return registry.Default().Plugins()
}
