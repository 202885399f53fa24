package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var schemaData []byte

var (
	configSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchema compiles the embedded schema once per process.
func compileSchema() error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add config schema resource: %w", err)
			return
		}

		configSchema, compileErr = compiler.Compile("config.schema.json")
	})

	return compileErr
}

// validate checks raw YAML config data against the embedded JSON schema,
// catching typoed keys and wrong value types before they silently become
// zero values.
func validate(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	// Round-trip through JSON so the instance uses the value types the
	// validator expects (json.Number-free, string-keyed maps).
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not JSON-representable: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("invalid config document: %w", err)
	}

	if err := configSchema.Validate(instance); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
