package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildEnvelopeSchema returns the shallow JSON-Schema for the extraction
// envelope: a top-level object with a "records" array of objects and an
// "Agency Name" object carrying exactly one agency key. Field-level content
// is deliberately unconstrained; the normalizer repairs records itself.
func BuildEnvelopeSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"records", "Agency Name"},
		"properties": map[string]any{
			"records": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
			"Agency Name": map[string]any{
				"type":          "object",
				"minProperties": 1,
				"maxProperties": 1,
			},
		},
	}
}

// ValidateEnvelope validates raw JSON against the envelope schema.
func ValidateEnvelope(data []byte) error {
	return validateAgainstSchema(BuildEnvelopeSchema(), data)
}

func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
