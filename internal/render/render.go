// Package render serializes result envelopes for callers and the CLI.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"

	"github.com/openmeta/metascope/internal/types"
)

// Encoding selects an envelope wire format.
type Encoding string

const (
	// EncodingJSON is indented JSON, the default.
	EncodingJSON Encoding = "json"
	// EncodingYAML is YAML.
	EncodingYAML Encoding = "yaml"
	// EncodingCBOR is canonical CBOR.
	EncodingCBOR Encoding = "cbor"
)

// ParseEncoding parses an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingJSON, EncodingYAML, EncodingCBOR:
		return Encoding(s), nil
	default:
		return "", fmt.Errorf("unknown output encoding %q (want json, yaml, or cbor)", s)
	}
}

// Encode serializes an envelope in the given encoding.
func Encode(env *types.Envelope, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingJSON:
		return json.MarshalIndent(env, "", "  ")
	case EncodingYAML:
		return yaml.Marshal(env)
	case EncodingCBOR:
		mode, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return nil, err
		}
		return mode.Marshal(env)
	default:
		return nil, fmt.Errorf("unknown output encoding %q", enc)
	}
}
