package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// actorSchemaJSON validates imported actor documents before any write.
const actorSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "id": {"type": "string"},
      "name": {"type": "string", "minLength": 1},
      "level": {"type": "integer", "minimum": 1, "maximum": 20},
      "owner": {"type": "string"},
      "image": {"type": "string"},
      "description": {"type": "string"}
    },
    "additionalProperties": false
  }
}`

var actorSchema = jsonschema.MustCompileString("actors.schema.json", actorSchemaJSON)

// validateDocument checks a decoded JSON document against the actor
// schema.
func validateDocument(doc any) error {
	if err := actorSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("schema validation: %s", flattenValidationError(ve))
		}
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// flattenValidationError renders the leaf causes of a validation error
// as a single line.
func flattenValidationError(ve *jsonschema.ValidationError) string {
	leaves := ve.BasicOutput().Errors

	var parts []string
	for _, l := range leaves {
		if l.Error == "" || strings.HasPrefix(l.Error, "doesn't validate with") {
			continue
		}
		loc := l.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", loc, l.Error))
	}
	if len(parts) == 0 {
		return ve.Message
	}
	return strings.Join(parts, "; ")
}
