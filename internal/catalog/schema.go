package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://enigma.local/schemas/catalog.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("catalog schema load failed: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("catalog schema compile failed: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Schema returns the JSON schema catalog documents are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// validate checks a generic decoded document (maps, slices, strings and
// float64 numbers, as encoding/json produces).
func validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	return s.Validate(doc)
}
