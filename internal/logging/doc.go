// Package logging provides file-based structured logging with rotation.
//
// In MCP mode stdout carries JSON-RPC, so logs go only to
// ~/.paynow-docs-mcp/logs/server.log and never to stdout or stderr.
// The `logs` command reads that file back through Viewer.
package logging
