package types

import (
	"strings"
	"time"
)

// Field is one metadata field emitted by a plugin.
//
// Names are qualified as "standard:name" (e.g. "png:width", "id3v2:title").
// Emission order is preserved inside a Result; the merge pass imposes its
// own deterministic ordering afterwards.
type Field struct {
	// Name is the qualified field key.
	Name string `json:"name" yaml:"name"`

	// Value is the decoded value.
	Value any `json:"value" yaml:"value"`

	// Authoritative marks this field as winning merge conflicts
	// regardless of plugin registration order.
	Authoritative bool `json:"authoritative,omitempty" yaml:"authoritative,omitempty"`
}

// SplitFieldName splits a qualified field name into standard and bare name.
// A name with no qualifier yields an empty standard.
func SplitFieldName(name string) (standard, bare string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// Result is the ordered output of one plugin invocation.
//
// The engine owns a Result exclusively until it is merged, then discards it.
type Result struct {
	Fields []Field
}

// Add appends a field to the result.
func (r *Result) Add(name string, value any) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// AddAuthoritative appends a field that wins merge conflicts unconditionally.
func (r *Result) AddAuthoritative(name string, value any) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value, Authoritative: true})
}

// PluginRun records one plugin invocation for observability: which plugin
// ran for which format, how long it took, and how it failed, if it did.
type PluginRun struct {
	Plugin  string        `json:"plugin" yaml:"plugin"`
	Format  Format        `json:"format" yaml:"format"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
	Fields  int           `json:"fields" yaml:"fields"`

	// Err is the failure description; empty on success. Timeouts, panics,
	// and malformed results are all recorded here in the same way.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// VisibleField is one tier-filtered field in the final envelope.
type VisibleField struct {
	Name     string       `json:"name" yaml:"name"`
	Standard string       `json:"standard" yaml:"standard"`
	Value    any          `json:"value" yaml:"value"`
	Source   string       `json:"source" yaml:"source"`
	Tier     Tier         `json:"tier" yaml:"tier"`
	Display  DisplayLevel `json:"display" yaml:"display"`
}

// Envelope is the final response for one extraction request.
//
// Callers always receive a well-formed envelope: a fatal input error is set
// on Err with empty field maps, per-plugin failures appear in Runs, and an
// unknown format yields an empty-but-successful envelope.
type Envelope struct {
	// ID is a unique request identifier.
	ID string `json:"id" yaml:"id"`

	// Path is the input file path.
	Path string `json:"path" yaml:"path"`

	// Candidates are the sniffed format candidates, highest confidence first.
	Candidates []FormatCandidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`

	// Fields are the visible fields, sorted by (standard, name).
	Fields []VisibleField `json:"fields" yaml:"fields"`

	// FieldsExtracted is the count of visible fields.
	FieldsExtracted int `json:"fields_extracted" yaml:"fields_extracted"`

	// LockedFields names fields that exist but are withheld at the
	// caller's tier or display level. Sorted, values omitted.
	LockedFields []string `json:"locked_fields" yaml:"locked_fields"`

	// Runs are the per-plugin invocation records, in dispatch order.
	Runs []PluginRun `json:"runs,omitempty" yaml:"runs,omitempty"`

	// Diagnostics are non-fatal issues observed during the request.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	// Elapsed is the total request duration.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`

	// Err is set only when the request aborted on a fatal input error.
	Err *InputError `json:"-" yaml:"-"`

	// Error is the string form of Err for serialized output.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
