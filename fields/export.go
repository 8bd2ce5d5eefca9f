package fields

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/tsawler/mosaic/model"
)

// Schema converts a merged field set into a JSON Schema describing the
// form the fields make up: one property per field keyed by field name,
// with required fields collected into the schema's required list. This is
// the hand-off format for downstream form-schema collaborators.
func Schema(detections []model.DetectedField) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema),
	}

	for _, f := range detections {
		if f.Name == "" {
			continue
		}

		prop := &jsonschema.Schema{
			Description: f.Label,
		}

		switch f.Type {
		case model.FieldTypeNumber:
			prop.Type = "number"
		case model.FieldTypeCheckbox:
			prop.Type = "boolean"
		case model.FieldTypeDate:
			prop.Type = "string"
			prop.Format = "date"
		default:
			prop.Type = "string"
		}

		schema.Properties[f.Name] = prop

		if f.Required {
			schema.Required = append(schema.Required, f.Name)
		}
	}

	return schema
}

// WriteJSON writes the field set as a single indented JSON array.
func WriteJSON(w io.Writer, detections []model.DetectedField) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(detections); err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}
	return nil
}

// WriteJSONL writes the field set as JSON Lines, one field per line.
func WriteJSONL(w io.Writer, detections []model.DetectedField) error {
	enc := json.NewEncoder(w)
	for i, f := range detections {
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding field %d: %w", i, err)
		}
	}
	return nil
}
