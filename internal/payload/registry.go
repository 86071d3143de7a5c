package payload

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names for every response shape the remote service returns.
const (
	SchemaOCRResponse         = "ocr_response"
	SchemaProcessTextResponse = "process_text_response"
	SchemaRequestsList        = "requests_list"
	SchemaAPIError            = "api_error"
)

var schemaNames = []string{
	SchemaOCRResponse,
	SchemaProcessTextResponse,
	SchemaRequestsList,
	SchemaAPIError,
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// schemaFor returns the compiled schema for name. All embedded schemas
// are compiled on first use and cached for the life of the process.
func schemaFor(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*jsonschema.Schema, len(schemaNames))
		for _, n := range schemaNames {
			filename := fmt.Sprintf("schemas/%s.json", n)
			content, err := schemaFS.ReadFile(filename)
			if err != nil {
				compileErr = fmt.Errorf("failed to read schema %s: %w", n, err)
				return
			}
			compiler := jsonschema.NewCompiler()
			if err := compiler.AddResource(filename, bytes.NewReader(content)); err != nil {
				compileErr = fmt.Errorf("failed to load schema %s: %w", n, err)
				return
			}
			schema, err := compiler.Compile(filename)
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", n, err)
				return
			}
			compiled[n] = schema
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	schema, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("schema not found: %s", name)
	}
	return schema, nil
}
