package types

import "fmt"

// InputError is returned when the request's input path is missing or
// unreadable. It is the only error class that aborts a whole request.
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// MalformedResultError is recorded when a plugin returned a result the
// engine cannot use (nil result with nil error, or an empty field name).
type MalformedResultError struct {
	Plugin string
	Reason string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("plugin %s returned malformed result: %s", e.Plugin, e.Reason)
}

// Diagnostic is a non-fatal issue observed while serving a request.
//
// Diagnostics never abort extraction. They cover sniffing I/O problems,
// catalog inventory gaps (a plugin emitted a field the catalog does not
// list), and anything else worth surfacing without failing the request.
type Diagnostic struct {
	// Stage where the diagnostic arose: "sniff", "dispatch", "merge".
	Stage string `json:"stage"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Field is the related field name, when applicable.
	Field string `json:"field,omitempty"`
}

// String returns a human-readable form of the diagnostic.
func (d Diagnostic) String() string {
	if d.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", d.Stage, d.Message, d.Field)
	}
	return fmt.Sprintf("%s: %s", d.Stage, d.Message)
}
