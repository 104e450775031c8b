package catalog

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema constrains the catalog document shape. Tier and display
// vocabularies accept both spellings the wider system uses.
const documentSchema = `{
  "type": "object",
  "required": ["fields"],
  "properties": {
    "fields": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "standard", "type", "tier", "display"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "standard": {"type": "string", "minLength": 1},
          "type": {
            "type": "string",
            "enum": ["string", "integer", "float", "boolean", "datetime",
                     "binary", "array", "object", "gps", "rational"]
          },
          "tier": {
            "type": "string",
            "enum": ["free", "professional", "starter", "forensic",
                     "premium", "enterprise", "super"]
          },
          "display": {"type": "string", "enum": ["simple", "advanced", "raw"]},
          "example": {"type": "string"},
          "related": {"type": "array", "items": {"type": "string"}},
          "note": {"type": "string"}
        }
      }
    }
  }
}`

// validateDocument checks a YAML catalog document against documentSchema.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid document: %s", strings.Join(msgs, "; "))
	}
	return nil
}
