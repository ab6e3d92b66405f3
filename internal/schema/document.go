// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Document describes the shape of a definition document. It is used only to
// reflect the JSON Schema; Parse walks the YAML node tree directly so that
// declaration order survives.
type Document struct {
	Schema          string                                 `json:"$schema,omitempty"`
	Title           string                                 `json:"title,omitempty" jsonschema:"description=Human readable title shown above the menu"`
	Version         string                                 `json:"version,omitempty" jsonschema:"description=Semantic version of the document"`
	All             map[string]TypeDescriptor              `json:"all" jsonschema:"description=Declared properties in menu order"`
	KeyConditions   map[string][]ConditionEntry            `json:"key_conditions,omitempty" jsonschema:"description=Conditions gating each property"`
	ValueConditions map[string]map[string][]ConditionEntry `json:"value_conditions,omitempty" jsonschema:"description=Conditions gating each choice of a choice-typed property"`
}

// TypeDescriptor is "int", "float", any other type name for a freeform
// string, or a list of choices.
type TypeDescriptor struct{}

// JSONSchema implements jsonschema.JSONSchemer.
func (TypeDescriptor) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Description: "int, float, or the name of a freeform string type"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}, Description: "ordered list of allowed values"},
		},
	}
}

// ConditionEntry is a [operand, operator, literal] triple or a textual
// expression such as `mode == "B"`.
type ConditionEntry struct{}

// JSONSchema implements jsonschema.JSONSchemer.
func (ConditionEntry) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Description: "textual condition"},
			{Type: "array", Description: "[operand, operator, literal] triple"},
		},
	}
}

// SchemaID returns the $id of the generated JSON Schema.
func SchemaID() string {
	return "https://holomush.dev/schemas/dynconf.schema.json"
}

// GenerateJSONSchema generates the JSON Schema of definition documents.
func GenerateJSONSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Document{})

	schema.ID = jsonschema.ID(SchemaID())
	schema.Title = "dynconf definition document"
	schema.Description = "Properties, their types, and the conditions between them"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*jschema.Schema, error) {
	schemaBytes, err := GenerateJSONSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
})

// validateDocument validates decoded document data against the JSON Schema.
func validateDocument(data any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	return sch.Validate(convertToJSONTypes(data))
}

// convertToJSONTypes converts YAML-decoded data to JSON-compatible types.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = convertToJSONTypes(v)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[fmt.Sprint(k)] = convertToJSONTypes(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = convertToJSONTypes(v)
		}
		return result
	case string, int, int64, uint64, float64, bool, nil:
		return val
	default:
		if b, err := json.Marshal(val); err == nil {
			var result any
			if err := json.Unmarshal(b, &result); err == nil {
				return result
			}
		}
		return val
	}
}
