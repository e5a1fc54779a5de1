package tools

import (
	"encoding/json"
	"fmt"

	invopopSchema "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// generateSchema generates a JSON Schema from a tool input struct using
// invopop/jsonschema reflection.
func generateSchema(input any) (json.RawMessage, error) {
	reflector := invopopSchema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(input)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return raw, nil
}

// compileSchema compiles a JSON Schema for argument validation.
func compileSchema(name string, raw json.RawMessage) (*jsonschema.Schema, error) {
	schema, err := jsonschema.CompileString(name, string(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid schema for %s: %w", name, err)
	}
	return schema, nil
}

// validateArgs validates raw JSON arguments against a compiled schema.
func validateArgs(schema *jsonschema.Schema, args json.RawMessage) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	var data any
	if err := json.Unmarshal(args, &data); err != nil {
		return fmt.Errorf("invalid JSON arguments: %w", err)
	}

	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
