package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema generates the JSON Schema describing the config file,
// consumed by editors and the `prefsync config schema` command.
func JSONSchema() (string, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "prefsync configuration"
	schema.Description = "Preference detection and synchronization settings"

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(out), nil
}
