package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for hooklint configuration files
// from the Config struct. Extension sections such as logging are appended to
// the embedded schema by hand.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Unknown top-level keys are kept as extensions.
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "hooklint configuration"
	schema.Description = "Schema for .hooklint.yml and .hooklint.toml files."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
