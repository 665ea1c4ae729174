package workbench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates widget configuration payloads against the schema
// of their widget type.
type ConfigValidator interface {
	Validate(typ WidgetType, config WidgetConfig) error
}

// JSONSchemaValidator compiles per-type schemas once and validates
// configurations against them.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetType]*jsonschema.Schema),
	}
}

// Validate ensures the configuration satisfies the widget type's schema.
// Unknown types pass; they carry no schema to enforce.
func (v *JSONSchemaValidator) Validate(typ WidgetType, config WidgetConfig) error {
	def, ok := DefinitionFor(typ)
	if !ok || len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(typ, def)
	if err != nil {
		return err
	}
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("workbench: marshal config for %s: %w", typ, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("workbench: normalize config for %s: %w", typ, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("workbench: configuration for %s failed validation: %w", typ, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(typ WidgetType, def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[typ]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("workbench: marshal schema %s: %w", typ, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(typ) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("workbench: load schema %s: %w", typ, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("workbench: compile schema %s: %w", typ, err)
	}
	v.mu.Lock()
	v.compiled[typ] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetType, WidgetConfig) error { return nil }
