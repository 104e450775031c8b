package metascope

import (
	"github.com/openmeta/metascope/internal/types"
)

// Envelope is an alias to types.Envelope.
// Re-exported from internal/types to keep the public API flat.
type Envelope = types.Envelope

// VisibleField is an alias to types.VisibleField.
type VisibleField = types.VisibleField

// PluginRun is an alias to types.PluginRun.
type PluginRun = types.PluginRun

// Field is an alias to types.Field.
type Field = types.Field

// Result is an alias to types.Result.
type Result = types.Result

// FieldDefinition is an alias to types.FieldDefinition.
type FieldDefinition = types.FieldDefinition
