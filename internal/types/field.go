package types

// FieldType is the declared data type of a catalog field.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeFloat    FieldType = "float"
	TypeBoolean  FieldType = "boolean"
	TypeDatetime FieldType = "datetime"
	TypeBinary   FieldType = "binary"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
	TypeGPS      FieldType = "gps"
	TypeRational FieldType = "rational"
)

// FieldDefinition describes one catalog entry: a metadata field's owning
// standard, type, and the tier and display level required to view it.
//
// Definitions are loaded once at startup and are read-only thereafter.
type FieldDefinition struct {
	// Name is the field key, unique within its standard's namespace.
	Name string `json:"name" yaml:"name"`

	// Standard is the owning specification identifier (e.g. "exif", "id3v2").
	Standard string `json:"standard" yaml:"standard"`

	// Type is the declared value type.
	Type FieldType `json:"type" yaml:"type"`

	// MinTier is the minimum subscription tier required to view the value.
	MinTier Tier `json:"min_tier" yaml:"-"`

	// Display is the verbosity level at which the field appears.
	Display DisplayLevel `json:"display" yaml:"-"`

	// Example is an optional example value.
	Example string `json:"example,omitempty" yaml:"example"`

	// Related lists related field names, if any.
	Related []string `json:"related,omitempty" yaml:"related"`

	// Note is an optional significance note.
	Note string `json:"note,omitempty" yaml:"note"`
}

// DefaultFieldDefinition is the definition applied to a field a plugin
// emitted but the catalog does not know: visible to everyone, raw display.
func DefaultFieldDefinition(name, standard string) FieldDefinition {
	return FieldDefinition{
		Name:     name,
		Standard: standard,
		Type:     TypeString,
		MinTier:  TierFree,
		Display:  DisplayRaw,
	}
}
