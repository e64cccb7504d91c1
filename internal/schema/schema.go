// Package schema строит JSON Schema из Go типов для структурированных вызовов модели.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema — объектная JSON Schema в виде, который принимают API моделей
type Schema struct {
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// Generate строит схему для структуры T по тегам json и jsonschema.
// Вложенные структуры разворачиваются на месте, без $ref.
func Generate[T any]() *Schema {
	var zero T
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	root := r.Reflect(&zero)

	return &Schema{
		Properties: properties(root),
		Required:   root.Required,
	}
}

// Map возвращает схему целиком, с type=object
func (s *Schema) Map() map[string]any {
	m := map[string]any{
		"type":       "object",
		"properties": s.Properties,
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	return m
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func properties(s *jsonschema.Schema) map[string]any {
	if s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = property(pair.Value)
	}
	return props
}

func property(s *jsonschema.Schema) map[string]any {
	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Minimum != "" {
		m["minimum"] = s.Minimum
	}
	if s.Maximum != "" {
		m["maximum"] = s.Maximum
	}

	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = properties(s)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}

	if s.Items != nil {
		m["items"] = property(s.Items)
	}

	return m
}
