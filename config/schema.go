package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for jsonview.yml from the Config
// type. Extensions are not described, so unknown top-level keys are allowed.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		Anonymous:                  true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "jsonview Configuration"
	schema.Description = "Schema for jsonview.yml and jsonview.toml."

	return json.MarshalIndent(schema, "", "  ")
}
