package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	docserr "github.com/owlting/paynow-docs-mcp/internal/errors"
	"github.com/owlting/paynow-docs-mcp/pkg/version"
)

// ServerName is the MCP implementation name reported during initialization.
const ServerName = "search-paynow-component-documentation"

// DocsSearcher queries the remote documentation service.
type DocsSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Server is the MCP server for PayNow Component documentation.
// It holds no per-call state; every handler is a single request/response.
type Server struct {
	mcp    *mcp.Server
	docs   DocsSearcher
	logger *slog.Logger

	tool       *mcp.Tool
	prompt     *mcp.Prompt
	argsSchema *jsonschema.Resolved
}

// NewServer creates a new MCP server backed by docs.
func NewServer(docs DocsSearcher) (*Server, error) {
	if docs == nil {
		return nil, errors.New("docs searcher is required")
	}

	schema, err := searchArgsSchema()
	if err != nil {
		return nil, err
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve search args schema: %w", err)
	}

	s := &Server{
		docs:       docs,
		logger:     slog.Default(),
		tool:       newSearchTool(schema),
		prompt:     newSearchPrompt(),
		argsSchema: resolved,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/prompts
	)

	s.registerTools()
	s.registerPrompts()

	return s, nil
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return ServerName, version.Version
}

// ListTools returns the tool descriptors served by tools/list.
func (s *Server) ListTools() []*mcp.Tool {
	return []*mcp.Tool{s.tool}
}

// ListPrompts returns the prompt descriptors served by prompts/list.
func (s *Server) ListPrompts() []*mcp.Prompt {
	return []*mcp.Prompt{s.prompt}
}

// registerTools registers every tool with its handler.
func (s *Server) registerTools() {
	handlers := map[string]mcp.ToolHandler{
		SearchName: s.mcpSearchToolHandler,
	}
	for _, t := range s.ListTools() {
		s.mcp.AddTool(t, handlers[t.Name])
		s.logger.Debug("Registered tool", slog.String("name", t.Name))
	}
}

// registerPrompts registers every prompt with its handler.
func (s *Server) registerPrompts() {
	handlers := map[string]mcp.PromptHandler{
		SearchName: s.mcpSearchPromptHandler,
	}
	for _, p := range s.ListPrompts() {
		s.mcp.AddPrompt(p, handlers[p.Name])
		s.logger.Debug("Registered prompt", slog.String("name", p.Name))
	}
}

// mcpSearchToolHandler is the MCP SDK handler for the search tool.
func (s *Server) mcpSearchToolHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}
	return s.CallSearchTool(ctx, raw)
}

// mcpSearchPromptHandler is the MCP SDK handler for the search prompt.
func (s *Server) mcpSearchPromptHandler(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var args map[string]string
	if req != nil && req.Params != nil {
		args = req.Params.Arguments
	}
	return s.GetSearchPrompt(ctx, args)
}

// CallSearchTool validates the raw tool arguments and runs the search.
// Invalid arguments yield an invalid-params error; a failed lookup yields an
// internal error. On success the result holds one text item with the raw body.
func (s *Server) CallSearchTool(ctx context.Context, rawArgs json.RawMessage) (*mcp.CallToolResult, error) {
	args, err := s.decodeSearchArgs(rawArgs)
	if err != nil {
		s.logger.Warn("search tool rejected arguments", slog.String("error", err.Error()))
		return nil, err
	}

	text, err := s.search(ctx, SearchName+" tool", args.Query)
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

// GetSearchPrompt runs the search for the prompt path.
// Only the presence of "query" is checked. A failed lookup is reported as a
// regular prompt result whose message carries the error text.
func (s *Server) GetSearchPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	query, ok := args["query"]
	if !ok {
		return nil, NewInvalidParamsError("Query is required")
	}

	text, err := s.search(ctx, SearchName+" prompt", query)
	if err != nil {
		return promptResult(promptResultFailed, ErrorMessage(MapError(err))), nil
	}
	return promptResult(promptResultOK, text), nil
}

// decodeSearchArgs unmarshals and validates tool arguments against the schema.
func (s *Server) decodeSearchArgs(raw json.RawMessage) (SearchArgs, error) {
	instance := map[string]any{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &instance); err != nil {
			return SearchArgs{}, NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	if err := s.argsSchema.Validate(instance); err != nil {
		return SearchArgs{}, NewInvalidParamsError(err.Error())
	}

	query, ok := instance["query"].(string)
	if !ok {
		return SearchArgs{}, NewInvalidParamsError("query must be a string")
	}
	return SearchArgs{Query: query}, nil
}

// search calls the docs service with request-scoped logging.
func (s *Server) search(ctx context.Context, op, query string) (string, error) {
	start := time.Now()
	requestID := generateRequestID()

	s.logger.Info(op+" started",
		slog.String("request_id", requestID),
		slog.String("query", query))

	text, err := s.docs.Search(ctx, query)
	duration := time.Since(start)

	if err != nil {
		attrs := []any{
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
		}
		for _, a := range docserr.FormatForLog(err) {
			attrs = append(attrs, a)
		}
		s.logger.Error(op+" failed", attrs...)
		return "", err
	}

	s.logger.Info(op+" completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("bytes", len(text)))

	return text, nil
}

// promptResult builds a one-message prompt result.
func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server",
		slog.String("transport", transport),
		slog.String("version", version.Version))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error",
				slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
