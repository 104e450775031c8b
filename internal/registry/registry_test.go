package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/types"
)

// fakePlugin implements Plugin for registry tests.
type fakePlugin struct {
	name    string
	formats []types.Format
}

func (p *fakePlugin) Name() string            { return p.name }
func (p *fakePlugin) Formats() []types.Format { return p.formats }

func (p *fakePlugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	return &types.Result{}, nil
}

func TestRegistry_LookupPreservesRegistrationOrder(t *testing.T) {
	r := New()
	for i := 0; i < 5; i++ {
		r.Register(&fakePlugin{
			name:    fmt.Sprintf("plugin-%d", i),
			formats: []types.Format{types.FormatPNG},
		})
	}

	plugins := r.Lookup(types.FormatPNG)
	require.Len(t, plugins, 5)
	for i, p := range plugins {
		assert.Equal(t, fmt.Sprintf("plugin-%d", i), p.Name())
	}
}

func TestRegistry_UnknownFormatIsEmptyNotError(t *testing.T) {
	r := New()
	plugins := r.Lookup(types.Format("made-up"))
	assert.Empty(t, plugins)
}

func TestRegistry_MultiFormatPlugin(t *testing.T) {
	r := New()
	p := &fakePlugin{name: "multi", formats: []types.Format{types.FormatJPEG, types.FormatTIFF}}
	r.Register(p)

	require.Len(t, r.Lookup(types.FormatJPEG), 1)
	require.Len(t, r.Lookup(types.FormatTIFF), 1)
	// Plugins lists the plugin once regardless of how many formats it serves.
	assert.Len(t, r.Plugins(), 1)
}

func TestRegistry_LookupReturnsCopy(t *testing.T) {
	r := New()
	r.Register(&fakePlugin{name: "a", formats: []types.Format{types.FormatPNG}})
	r.Register(&fakePlugin{name: "b", formats: []types.Format{types.FormatPNG}})

	got := r.Lookup(types.FormatPNG)
	got[0] = got[1] // caller mutation must not leak into the registry

	again := r.Lookup(types.FormatPNG)
	assert.Equal(t, "a", again[0].Name())
}

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	// The built-in decoder packages register themselves on import.
	// This test package does not import them, so Default may be empty
	// here; it must at least be usable.
	assert.NotNil(t, Default())
}
