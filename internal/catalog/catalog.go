// Package catalog holds the static field-definition catalog.
//
// The catalog is the authority on a field's owning standard, declared type,
// minimum tier, and display level. It is loaded once at startup from an
// embedded YAML document (schema-validated first) and is read-only
// afterwards. Fields a plugin emits without a catalog entry are still
// passed through; the merge pass applies a free/raw default and records an
// inventory-gap diagnostic.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/openmeta/metascope/internal/types"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// document is the on-disk shape of the catalog.
type document struct {
	Fields []entry `yaml:"fields"`
}

// entry is one on-disk field definition with string-form tier and display.
type entry struct {
	Name     string   `yaml:"name"`
	Standard string   `yaml:"standard"`
	Type     string   `yaml:"type"`
	Tier     string   `yaml:"tier"`
	Display  string   `yaml:"display"`
	Example  string   `yaml:"example"`
	Related  []string `yaml:"related"`
	Note     string   `yaml:"note"`
}

// Catalog is an immutable set of field definitions queryable by qualified
// name ("standard:name") or by standard.
type Catalog struct {
	byName     map[string]types.FieldDefinition
	byStandard map[string][]types.FieldDefinition
}

// Load parses and validates a catalog document.
//
// The document is validated against the embedded JSON schema before
// decoding, so a malformed catalog fails at startup with a precise
// message instead of surfacing as odd tiering behavior later.
func Load(data []byte) (*Catalog, error) {
	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("catalog schema: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		byName:     make(map[string]types.FieldDefinition, len(doc.Fields)),
		byStandard: make(map[string][]types.FieldDefinition),
	}
	for _, e := range doc.Fields {
		tier, err := types.ParseTier(e.Tier)
		if err != nil {
			return nil, fmt.Errorf("field %s:%s: %w", e.Standard, e.Name, err)
		}
		display, err := types.ParseDisplayLevel(e.Display)
		if err != nil {
			return nil, fmt.Errorf("field %s:%s: %w", e.Standard, e.Name, err)
		}
		def := types.FieldDefinition{
			Name:     e.Name,
			Standard: e.Standard,
			Type:     types.FieldType(e.Type),
			MinTier:  tier,
			Display:  display,
			Example:  e.Example,
			Related:  e.Related,
			Note:     e.Note,
		}
		key := e.Standard + ":" + e.Name
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate field definition %s", key)
		}
		c.byName[key] = def
		c.byStandard[e.Standard] = append(c.byStandard[e.Standard], def)
	}
	return c, nil
}

// Default returns the catalog built from the embedded document.
// The embedded document is validated by tests; a corrupt build panics here.
func Default() *Catalog {
	c, err := Load(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

// Lookup returns the definition for a qualified field name.
func (c *Catalog) Lookup(qualified string) (types.FieldDefinition, bool) {
	def, ok := c.byName[qualified]
	return def, ok
}

// Standard returns all definitions owned by a standard, sorted by name.
func (c *Catalog) Standard(id string) []types.FieldDefinition {
	defs := make([]types.FieldDefinition, len(c.byStandard[id]))
	copy(defs, c.byStandard[id])
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Standards returns the sorted list of standard identifiers in the catalog.
func (c *Catalog) Standards() []string {
	out := make([]string, 0, len(c.byStandard))
	for id := range c.byStandard {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of field definitions.
func (c *Catalog) Len() int {
	return len(c.byName)
}
