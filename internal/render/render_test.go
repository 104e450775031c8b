package render

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeta/metascope/internal/types"
)

func sampleEnvelope() *types.Envelope {
	return &types.Envelope{
		ID:   "0b6f2f1e-59a4-4e55-9aa1-1f2f51a7c9d0",
		Path: "sample.png",
		Fields: []types.VisibleField{
			{Name: "png:height", Standard: "png", Value: 480, Source: "png", Tier: types.TierFree, Display: types.DisplaySimple},
			{Name: "png:width", Standard: "png", Value: 640, Source: "png", Tier: types.TierFree, Display: types.DisplaySimple},
		},
		FieldsExtracted: 2,
		LockedFields:    []string{"png:bit_depth"},
	}
}

func TestParseEncoding(t *testing.T) {
	for _, name := range []string{"json", "yaml", "cbor"} {
		enc, err := ParseEncoding(name)
		require.NoError(t, err)
		assert.Equal(t, Encoding(name), enc)
	}

	_, err := ParseEncoding("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestEncode_JSON(t *testing.T) {
	out, err := Encode(sampleEnvelope(), EncodingJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "sample.png", decoded["path"])
	assert.Equal(t, float64(2), decoded["fields_extracted"])

	// The input error is internal state; only its string form is exported.
	assert.NotContains(t, decoded, "Err")
}

func TestEncode_YAML(t *testing.T) {
	out, err := Encode(sampleEnvelope(), EncodingYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "sample.png")
	assert.Contains(t, string(out), "png:width")
}

func TestEncode_CBOR(t *testing.T) {
	out, err := Encode(sampleEnvelope(), EncodingCBOR)
	require.NoError(t, err)

	// fxamacker/cbor falls back to json struct tags, so keys match the
	// JSON encoding.
	var decoded map[string]any
	require.NoError(t, cbor.Unmarshal(out, &decoded))
	assert.Equal(t, "sample.png", decoded["path"])
}

func TestEncode_UnknownEncoding(t *testing.T) {
	_, err := Encode(sampleEnvelope(), Encoding("protobuf"))
	require.Error(t, err)
}
