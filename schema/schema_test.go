package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/govm-net/counter/counter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, name string, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(Generate(name, v))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestStateSchema(t *testing.T) {
	s := decode(t, "state", counter.State{})

	assert.Equal(t, "state", s["title"])
	assert.Equal(t, "object", s["type"])

	props := s["properties"].(map[string]any)
	owner := props["owner"].(map[string]any)
	assert.Equal(t, "string", owner["type"])
	count := props["count"].(map[string]any)
	assert.Equal(t, "integer", count["type"])
}

func TestExecuteMsgSchemaIsOneOf(t *testing.T) {
	s := decode(t, "execute_msg", counter.ExecuteMsg{})

	oneOf, ok := s["oneOf"].([]any)
	require.True(t, ok)
	assert.Len(t, oneOf, 2)

	props := s["properties"].(map[string]any)
	assert.Contains(t, props, "increment")
	assert.Contains(t, props, "reset")
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "schema")
	require.NoError(t, os.MkdirAll(dir, 0755))

	stale := filepath.Join(dir, "old_msg.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0644))
	keep := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(keep, []byte("docs"), 0644))

	paths, err := Export(dir, Entries)
	require.NoError(t, err)
	assert.Len(t, paths, len(Entries))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, keep)
	for _, name := range []string{"init_msg", "execute_msg", "query_msg", "state", "count_response"} {
		path := filepath.Join(dir, name+".json")
		assert.FileExists(t, path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(data), name)
	}
}
