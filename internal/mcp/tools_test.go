package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchArgsSchema_Shape(t *testing.T) {
	// Given: the generated input schema
	schema, err := searchArgsSchema()
	require.NoError(t, err)

	// Then: object with one required non-empty string property
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"query"}, schema.Required)
	require.Contains(t, schema.Properties, "query")

	query := schema.Properties["query"]
	assert.Equal(t, "string", query.Type)
	require.NotNil(t, query.MinLength)
	assert.Equal(t, 1, *query.MinLength)
	assert.Contains(t, query.Description, "auto-translated to English")
	assert.Nil(t, schema.AdditionalProperties)
}

func TestSearchArgsSchema_ValidatesArguments(t *testing.T) {
	schema, err := searchArgsSchema()
	require.NoError(t, err)
	resolved, err := schema.Resolve(nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"query": "refund policy"}, false},
		{"extra property tolerated", map[string]any{"query": "x", "page": 2}, false},
		{"missing query", map[string]any{}, true},
		{"empty query", map[string]any{"query": ""}, true},
		{"non-string query", map[string]any{"query": 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolved.Validate(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSearchTool_Descriptor(t *testing.T) {
	schema, err := searchArgsSchema()
	require.NoError(t, err)

	tool := newSearchTool(schema)

	assert.Equal(t, "search_paynow_component_documentation", tool.Name)
	assert.Contains(t, tool.Description, "Search PayNow Component documentation")

	// The advertised schema serializes with the query requirement intact.
	data, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"required":["query"]`)
	assert.Contains(t, string(data), `"minLength":1`)
}

func TestNewSearchPrompt_Descriptor(t *testing.T) {
	prompt := newSearchPrompt()

	assert.Equal(t, SearchName, prompt.Name)
	assert.Equal(t, "Search PayNow Component documentation and return matching sections", prompt.Description)
	require.Len(t, prompt.Arguments, 1)
	assert.Equal(t, "query", prompt.Arguments[0].Name)
	assert.True(t, prompt.Arguments[0].Required)
	assert.Contains(t, prompt.Arguments[0].Description, "auto-translated to English")
}
