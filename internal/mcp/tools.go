package mcp

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchName is the name of both the search tool and the search prompt.
const SearchName = "search_paynow_component_documentation"

// Descriptions shown to MCP clients.
const (
	toolDescription = "Search PayNow Component documentation. Any non-English input will be " +
		"auto-translated to English before populating the query."
	promptDescription = "Search PayNow Component documentation and return matching sections"
	queryDescription  = "Search keywords in English. Any non-English input will be " +
		"auto-translated to English before populating this field."
	promptQueryDescription = "Search query in English. Any non-English input will be " +
		"auto-translated to English before filling this argument."
)

// Prompt result descriptions.
const (
	promptResultOK     = "Search results"
	promptResultFailed = "Search failed"
)

// SearchArgs defines the input schema for the search tool.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Search keywords in English. Any non-English input will be auto-translated to English before populating this field."`
}

// searchArgsSchema builds the tool input schema: an object with a required,
// non-empty string query. Unknown properties are tolerated.
func searchArgsSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SearchArgs](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer search args schema: %w", err)
	}
	schema.Title = "SearchArgs"
	schema.Description = "Parameters for searching PayNow Component documentation."
	schema.AdditionalProperties = nil

	query, ok := schema.Properties["query"]
	if !ok {
		return nil, fmt.Errorf("search args schema has no query property")
	}
	minLen := 1
	query.MinLength = &minLen
	query.Description = queryDescription

	return schema, nil
}

// newSearchTool returns the tool descriptor advertised by tools/list.
func newSearchTool(schema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        SearchName,
		Description: toolDescription,
		InputSchema: schema,
	}
}

// newSearchPrompt returns the prompt descriptor advertised by prompts/list.
func newSearchPrompt() *mcp.Prompt {
	return &mcp.Prompt{
		Name:        SearchName,
		Description: promptDescription,
		Arguments: []*mcp.PromptArgument{
			{Name: "query", Description: promptQueryDescription, Required: true},
		},
	}
}
