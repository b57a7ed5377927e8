// Package schema exports JSON schemas of the contract messages and state so
// clients can validate payloads before sending them.
package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"

	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/counter"
	"github.com/invopop/jsonschema"
)

// Entry names one exported schema
type Entry struct {
	Name  string // file name without extension
	Value any    // zero value of the described type
}

// Entries lists every type whose schema is exported
var Entries = []Entry{
	{"init_msg", counter.InitMsg{}},
	{"execute_msg", counter.ExecuteMsg{}},
	{"query_msg", counter.QueryMsg{}},
	{"state", counter.State{}},
	{"count_response", counter.CountResponse{}},
}

var addressType = reflect.TypeOf(core.Address{})

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == addressType {
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     "^(0x)?[0-9a-fA-F]{0,40}$",
					Description: "hex encoded account address",
				}
			}
			return nil
		},
	}
}

// Generate returns the schema of v titled with name
func Generate(name string, v any) *jsonschema.Schema {
	s := newReflector().Reflect(v)
	s.Title = name
	return s
}

// Export writes one <name>.json file per entry into outDir, removing stale
// schema files first. It returns the written paths.
func Export(outDir string, entries []Entry) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create schema directory: %w", err)
	}
	if err := RemoveSchemas(outDir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		data, err := json.MarshalIndent(Generate(entry.Name, entry.Value), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s schema: %w", entry.Name, err)
		}

		path := filepath.Join(outDir, entry.Name+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s schema: %w", entry.Name, err)
		}
		slog.Debug("schema exported", "name", entry.Name, "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// RemoveSchemas deletes every *.json file directly inside dir
func RemoveSchemas(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list schemas: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove schema %s: %w", path, err)
		}
	}
	return nil
}
