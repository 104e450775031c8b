package metascope

import (
	"github.com/openmeta/metascope/internal/types"
)

// InputError is an alias to types.InputError.
// Re-exported from internal/types to keep the public API flat.
type InputError = types.InputError

// MalformedResultError is an alias to types.MalformedResultError.
type MalformedResultError = types.MalformedResultError

// Diagnostic is an alias to types.Diagnostic.
type Diagnostic = types.Diagnostic
