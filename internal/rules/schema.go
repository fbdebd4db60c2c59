package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// presetSchema constrains only what the preset reader relies on: "fields",
// when present, must be an array of objects with string name/pattern values.
// Extra keys anywhere are allowed and ignored.
const presetSchema = `{
  "type": "object",
  "properties": {
    "fields": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "pattern": {"type": "string"}
        }
      }
    }
  }
}`

var compiledPresetSchema = jsonschema.MustCompileString("preset.schema.json", presetSchema)

// validatePresetShape checks that data is a JSON document the preset decoder
// can interpret.
func validatePresetShape(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid preset JSON: %w", err)
	}
	if err := compiledPresetSchema.Validate(v); err != nil {
		return fmt.Errorf("preset does not match the expected shape: %s", firstLine(err.Error()))
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
