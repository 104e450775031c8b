// Package merge combines plugin results into one tier-filtered field map.
//
// Precedence for duplicate field keys is deterministic and independent of
// plugin completion order: results are merged in the order the engine
// supplies them (candidate confidence order, then plugin registration
// order), first writer wins, except a field flagged authoritative replaces
// any earlier value and cannot itself be replaced by a later
// non-authoritative one.
package merge

import (
	"fmt"
	"sort"

	"github.com/openmeta/metascope/internal/catalog"
	"github.com/openmeta/metascope/internal/types"
)

// Input is one successful plugin result, tagged with its source plugin.
// The engine supplies inputs already in deterministic precedence order.
type Input struct {
	Plugin string
	Result *types.Result
}

// Output is the merged, tier-filtered view of all inputs.
type Output struct {
	// Visible fields, sorted by (standard, name).
	Visible []types.VisibleField

	// Locked names fields withheld at the caller's tier or display
	// level. Sorted; values are not included.
	Locked []string

	// Diagnostics records inventory gaps (fields with no catalog entry).
	Diagnostics []types.Diagnostic
}

// merged is one field after precedence resolution.
type merged struct {
	field  types.Field
	source string
}

// Merge resolves duplicate keys across inputs, applies catalog tiering,
// and splits fields into visible and locked sets.
//
// Fields absent from the catalog pass through at free tier and raw display,
// with an inventory-gap diagnostic per field.
func Merge(inputs []Input, tier types.Tier, display types.DisplayLevel, cat *catalog.Catalog) Output {
	byName := make(map[string]merged)
	var order []string

	for _, in := range inputs {
		for _, f := range in.Result.Fields {
			existing, ok := byName[f.Name]
			if !ok {
				byName[f.Name] = merged{field: f, source: in.Plugin}
				order = append(order, f.Name)
				continue
			}
			// First writer wins unless the newcomer is authoritative
			// and the holder is not.
			if f.Authoritative && !existing.field.Authoritative {
				byName[f.Name] = merged{field: f, source: in.Plugin}
			}
		}
	}

	var out Output
	for _, name := range order {
		m := byName[name]
		def, known := cat.Lookup(name)
		if !known {
			standard, bare := types.SplitFieldName(name)
			if standard == "" {
				standard = m.source
			}
			def = types.DefaultFieldDefinition(bare, standard)
			out.Diagnostics = append(out.Diagnostics, types.Diagnostic{
				Stage:   "merge",
				Message: fmt.Sprintf("field %s has no catalog entry, passed through at %s/%s", name, def.MinTier, def.Display),
				Field:   name,
			})
		}

		if tier.Includes(def.MinTier) && display.Includes(def.Display) {
			out.Visible = append(out.Visible, types.VisibleField{
				Name:     name,
				Standard: def.Standard,
				Value:    m.field.Value,
				Source:   m.source,
				Tier:     def.MinTier,
				Display:  def.Display,
			})
		} else {
			out.Locked = append(out.Locked, name)
		}
	}

	// Stable output ordering regardless of plugin execution order.
	sort.Slice(out.Visible, func(i, j int) bool {
		if out.Visible[i].Standard != out.Visible[j].Standard {
			return out.Visible[i].Standard < out.Visible[j].Standard
		}
		return out.Visible[i].Name < out.Visible[j].Name
	})
	sort.Strings(out.Locked)

	return out
}
