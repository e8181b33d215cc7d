// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Chott Contributors

package world

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the world file JSON Schema.
const SchemaID = "https://chott.dev/schemas/world.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jschema.Schema
	schemaErr      error
)

// GenerateSchema generates a JSON Schema from the File struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&File{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Chott World"
	schema.Description = "Schema for world.yaml location graph files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Wrapf(err, "failed to marshal schema")
	}
	return data, nil
}

// ValidateSchema validates YAML data against the world file JSON Schema.
func ValidateSchema(data []byte) error {
	if len(data) == 0 {
		return oops.Code(CodeYAMLInvalid).Errorf("world data is empty")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return oops.Code(CodeYAMLInvalid).Wrapf(err, "invalid YAML")
	}

	sch, err := getCompiledSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(toJSONTypes(doc)); err != nil {
		return oops.Code(CodeSchemaInvalid).Wrapf(err, "schema validation failed")
	}
	return nil
}

func getCompiledSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		raw, err := GenerateSchema()
		if err != nil {
			schemaErr = err
			return
		}

		var schemaData any
		if err := json.Unmarshal(raw, &schemaData); err != nil {
			schemaErr = oops.Wrapf(err, "failed to parse schema JSON")
			return
		}

		c := jschema.NewCompiler()
		if err := c.AddResource("world.schema.json", schemaData); err != nil {
			schemaErr = oops.Wrapf(err, "failed to add schema resource")
			return
		}
		compiledSchema, schemaErr = c.Compile("world.schema.json")
		if schemaErr != nil {
			schemaErr = oops.Wrapf(schemaErr, "failed to compile schema")
		}
	})
	return compiledSchema, schemaErr
}

// toJSONTypes converts yaml.v3 output into the shapes the validator expects.
// Everything is passed through a JSON round-trip so integers become float64
// and any non-string map keys are rejected early.
func toJSONTypes(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
