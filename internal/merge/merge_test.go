package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeta/metascope/internal/catalog"
	"github.com/openmeta/metascope/internal/types"
)

// testCatalog builds a small catalog covering the tiers and display levels
// these tests exercise.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load([]byte(`
fields:
  - name: width
    standard: img
    type: integer
    tier: free
    display: simple
  - name: depth
    standard: img
    type: integer
    tier: professional
    display: advanced
  - name: serial
    standard: img
    type: string
    tier: enterprise
    display: advanced
  - name: dump
    standard: img
    type: binary
    tier: free
    display: raw
`))
	require.NoError(t, err)
	return c
}

func result(fields ...types.Field) *types.Result {
	return &types.Result{Fields: fields}
}

func names(fields []types.VisibleField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func TestMerge_FirstRegisteredWins(t *testing.T) {
	out := Merge([]Input{
		{Plugin: "first", Result: result(types.Field{Name: "img:width", Value: 100})},
		{Plugin: "second", Result: result(types.Field{Name: "img:width", Value: 999})},
	}, types.TierFree, types.DisplaySimple, testCatalog(t))

	require.Len(t, out.Visible, 1)
	assert.Equal(t, 100, out.Visible[0].Value)
	assert.Equal(t, "first", out.Visible[0].Source)
}

func TestMerge_AuthoritativeOverride(t *testing.T) {
	out := Merge([]Input{
		{Plugin: "first", Result: result(types.Field{Name: "img:width", Value: 100})},
		{Plugin: "second", Result: result(types.Field{Name: "img:width", Value: 999, Authoritative: true})},
	}, types.TierFree, types.DisplaySimple, testCatalog(t))

	require.Len(t, out.Visible, 1)
	assert.Equal(t, 999, out.Visible[0].Value)
	assert.Equal(t, "second", out.Visible[0].Source)
}

func TestMerge_AuthoritativeHolderKeeps(t *testing.T) {
	// An authoritative holder is not displaced by a later authoritative
	// claim: precedence stays deterministic.
	out := Merge([]Input{
		{Plugin: "first", Result: result(types.Field{Name: "img:width", Value: 100, Authoritative: true})},
		{Plugin: "second", Result: result(types.Field{Name: "img:width", Value: 999, Authoritative: true})},
	}, types.TierFree, types.DisplaySimple, testCatalog(t))

	require.Len(t, out.Visible, 1)
	assert.Equal(t, 100, out.Visible[0].Value)
}

func TestMerge_TierFiltering(t *testing.T) {
	inputs := []Input{{Plugin: "p", Result: result(
		types.Field{Name: "img:width", Value: 1},
		types.Field{Name: "img:depth", Value: 8},
		types.Field{Name: "img:serial", Value: "X1"},
	)}}
	cat := testCatalog(t)

	// Free caller at advanced display: professional and enterprise
	// fields are locked by name, not dropped.
	out := Merge(inputs, types.TierFree, types.DisplayAdvanced, cat)
	assert.Equal(t, []string{"img:width"}, names(out.Visible))
	assert.Equal(t, []string{"img:depth", "img:serial"}, out.Locked)

	// Professional unlocks depth, serial stays locked.
	out = Merge(inputs, types.TierProfessional, types.DisplayAdvanced, cat)
	assert.Equal(t, []string{"img:depth", "img:width"}, names(out.Visible))
	assert.Equal(t, []string{"img:serial"}, out.Locked)

	// Enterprise sees everything.
	out = Merge(inputs, types.TierEnterprise, types.DisplayAdvanced, cat)
	assert.Len(t, out.Visible, 3)
	assert.Empty(t, out.Locked)
}

func TestMerge_DisplayFiltering(t *testing.T) {
	inputs := []Input{{Plugin: "p", Result: result(
		types.Field{Name: "img:width", Value: 1},
		types.Field{Name: "img:depth", Value: 8},
		types.Field{Name: "img:dump", Value: []byte{0x00}},
	)}}
	cat := testCatalog(t)

	// Simple display hides advanced and raw fields even when the tier
	// would allow them.
	out := Merge(inputs, types.TierEnterprise, types.DisplaySimple, cat)
	assert.Equal(t, []string{"img:width"}, names(out.Visible))
	assert.Equal(t, []string{"img:depth", "img:dump"}, out.Locked)

	out = Merge(inputs, types.TierEnterprise, types.DisplayRaw, cat)
	assert.Len(t, out.Visible, 3)
	assert.Empty(t, out.Locked)
}

func TestMerge_UnknownFieldPassesThrough(t *testing.T) {
	inputs := []Input{{Plugin: "p", Result: result(
		types.Field{Name: "img:mystery", Value: "?"},
	)}}
	cat := testCatalog(t)

	// Unknown fields default to free tier, raw display: visible at a
	// raw-display request, with an inventory-gap diagnostic either way.
	out := Merge(inputs, types.TierFree, types.DisplayRaw, cat)
	require.Len(t, out.Visible, 1)
	assert.Equal(t, "img:mystery", out.Visible[0].Name)
	assert.Equal(t, "img", out.Visible[0].Standard)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "merge", out.Diagnostics[0].Stage)
	assert.Equal(t, "img:mystery", out.Diagnostics[0].Field)

	out = Merge(inputs, types.TierFree, types.DisplaySimple, cat)
	assert.Empty(t, out.Visible)
	assert.Equal(t, []string{"img:mystery"}, out.Locked)
}

func TestMerge_UnqualifiedUnknownFieldUsesPluginAsStandard(t *testing.T) {
	inputs := []Input{{Plugin: "oddball", Result: result(
		types.Field{Name: "bare", Value: 1},
	)}}
	out := Merge(inputs, types.TierFree, types.DisplayRaw, testCatalog(t))

	require.Len(t, out.Visible, 1)
	assert.Equal(t, "oddball", out.Visible[0].Standard)
}

func TestMerge_StableSortedOutput(t *testing.T) {
	// Emission order is scrambled; output is sorted by (standard, name).
	inputs := []Input{{Plugin: "p", Result: result(
		types.Field{Name: "img:width", Value: 1},
		types.Field{Name: "img:depth", Value: 8},
		types.Field{Name: "img:dump", Value: "d"},
	)}}
	out := Merge(inputs, types.TierEnterprise, types.DisplayRaw, testCatalog(t))
	assert.Equal(t, []string{"img:depth", "img:dump", "img:width"}, names(out.Visible))
}

func TestMerge_NoInputs(t *testing.T) {
	out := Merge(nil, types.TierFree, types.DisplaySimple, testCatalog(t))
	assert.Empty(t, out.Visible)
	assert.Empty(t, out.Locked)
	assert.Empty(t, out.Diagnostics)
}

func TestMerge_VisibleAndLockedDisjoint(t *testing.T) {
	inputs := []Input{{Plugin: "p", Result: result(
		types.Field{Name: "img:width", Value: 1},
		types.Field{Name: "img:depth", Value: 8},
		types.Field{Name: "img:serial", Value: "X1"},
		types.Field{Name: "img:dump", Value: "d"},
	)}}
	out := Merge(inputs, types.TierProfessional, types.DisplayAdvanced, testCatalog(t))

	visible := make(map[string]bool)
	for _, f := range out.Visible {
		visible[f.Name] = true
	}
	for _, name := range out.Locked {
		assert.False(t, visible[name], "field %s is both visible and locked", name)
	}
	assert.Equal(t, 4, len(out.Visible)+len(out.Locked))
}
