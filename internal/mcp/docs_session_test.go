package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owlting/paynow-docs-mcp/internal/docs"
)

// connectDocsServer wires a real docs client against upstream into a
// client session over in-memory transports.
func connectDocsServer(t *testing.T, upstream http.Handler) *mcp.ClientSession {
	t.Helper()
	remote := httptest.NewServer(upstream)
	t.Cleanup(remote.Close)

	cfg := docs.DefaultConfig()
	cfg.Endpoint = remote.URL + "/get-paynow-component-documentation"
	cfg.RetryDelay = time.Millisecond
	client, err := docs.NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	srv, err := NewServer(client)
	require.NoError(t, err)
	return connectClient(t, srv)
}

func TestDocsSession_CallTool_RelaysBodyVerbatim(t *testing.T) {
	// Given: an upstream answering with a JSON-looking body
	var gotQuery, gotLang string
	cs := connectDocsServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotLang = r.URL.Query().Get("lang")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sections":["Refund policy"]}`))
	}))

	// When: calling the tool
	result, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchName,
		Arguments: map[string]any{"query": "refund policy"},
	})

	// Then: the body comes back untouched and the language is English
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, `{"sections":["Refund policy"]}`, text.Text)
	assert.Equal(t, "refund policy", gotQuery)
	assert.Equal(t, "en", gotLang)
}

func TestDocsSession_CallTool_InvalidArgumentsNeverReachUpstream(t *testing.T) {
	var calls atomic.Int32
	cs := connectDocsServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))

	tests := []struct {
		name string
		args any
	}{
		{"no arguments", nil},
		{"empty object", map[string]any{}},
		{"empty query", map[string]any{"query": ""}},
		{"numeric query", map[string]any{"query": 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      SearchName,
				Arguments: tt.args,
			})
			assert.Error(t, err)
		})
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestDocsSession_CallTool_UpstreamStatusIsInternalError(t *testing.T) {
	// Given: an upstream failing with 500
	cs := connectDocsServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	// When: calling the tool
	_, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      SearchName,
		Arguments: map[string]any{"query": "refund policy"},
	})

	// Then: the error names the failed lookup and the status line
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to search documentation: ")
	assert.Contains(t, err.Error(), "500 Internal Server Error")
}

func TestDocsSession_GetPrompt_MissingQuery(t *testing.T) {
	var calls atomic.Int32
	cs := connectDocsServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      SearchName,
		Arguments: map[string]string{},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Query is required")
	assert.Equal(t, int32(0), calls.Load())
}

func TestDocsSession_GetPrompt_UpstreamFailureIsResult(t *testing.T) {
	// Given: an upstream failing with 503
	cs := connectDocsServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	// When: requesting the prompt
	result, err := cs.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      SearchName,
		Arguments: map[string]string{"query": "payment button"},
	})

	// Then: a normal result carries the failure text
	require.NoError(t, err)
	assert.Equal(t, "Search failed", result.Description)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.Role("user"), result.Messages[0].Role)
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Failed to search documentation: ")
	assert.Contains(t, text.Text, "503 Service Unavailable")
}
