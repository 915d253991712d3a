package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema is the JSON Schema every catalog document must satisfy
// before any Go-side validation runs. Shape checking stays here; default
// filling and cross-question rules live in applyDefaults and Validate.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"assessmentId": map[string]any{"type": "string", "minLength": 1},
		"name":         map[string]any{"type": "string"},
		"version":      map[string]any{"type": "string", "minLength": 1},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"text": map[string]any{"type": "string"},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"scale", "binary", "ranking", "freetext"},
					},
					"dimension": map[string]any{
						"type": "string",
						"enum": []any{"apostolic", "prophetic", "evangelistic", "shepherding", "teaching"},
					},
					"weight":        map[string]any{"type": "number", "exclusiveMinimum": json.Number("0")},
					"reverseScored": map[string]any{"type": "boolean"},
					"required":      map[string]any{"type": "boolean"},
					"orderIndex":    map[string]any{"type": "integer"},
					"domain": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"min": map[string]any{"type": "number"},
							"max": map[string]any{"type": "number"},
						},
						"required": []any{"min", "max"},
					},
				},
				"required":             []any{"id", "type", "dimension"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"assessmentId", "version", "questions"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled catalog document schema, compiling it on
// first use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://catalog.json"
		if err := c.AddResource(schemaURL, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// checkShape validates raw catalog JSON against the document schema.
func checkShape(raw []byte) error {
	sch, err := compiled()
	if err != nil {
		return err
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(instance); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
