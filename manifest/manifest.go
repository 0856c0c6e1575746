package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// DefaultEmoji is used when a manifest does not declare one.
const DefaultEmoji = "🧩"

// Manifest describes one extension: its presentation metadata and the
// commands it contributes.
type Manifest struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Emoji       string            `json:"emoji"`
	Commands    []CommandManifest `json:"commands"`
}

// CommandManifest declares one templated command.
type CommandManifest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Reply is a text/template rendered with the request arguments.
	Reply string `json:"reply"`
}

// getSchema compiles the embedded JSON schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Parse validates raw manifest bytes against the schema and decodes them.
func Parse(data []byte) (*Manifest, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("manifest validation: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Emoji == "" {
		m.Emoji = DefaultEmoji
	}

	seen := make(map[string]struct{}, len(m.Commands))
	for _, cmd := range m.Commands {
		if _, dup := seen[cmd.Name]; dup {
			return nil, fmt.Errorf("duplicate command %q in manifest %s", cmd.Name, m.ID)
		}
		seen[cmd.Name] = struct{}{}
	}
	return &m, nil
}
