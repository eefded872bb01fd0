// Package mcp implements the Model Context Protocol (MCP) server that exposes
// PayNow Component documentation search as a tool and a prompt.
package mcp

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"

	docserr "github.com/owlting/paynow-docs-mcp/internal/errors"
)

// Standard JSON-RPC error codes.
const (
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// searchFailedPrefix starts the message of every failed docs lookup.
const searchFailedPrefix = "Failed to search documentation: "

// NewInvalidParamsError creates an invalid-params protocol error with a custom message.
func NewInvalidParamsError(msg string) *jsonrpc.Error {
	return &jsonrpc.Error{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// NewInternalError creates an internal protocol error with a custom message.
func NewInternalError(msg string) *jsonrpc.Error {
	return &jsonrpc.Error{
		Code:    ErrCodeInternalError,
		Message: msg,
	}
}

// MapError converts a docs lookup failure into a protocol error.
// Every failure kind (connection, timeout, HTTP status, anything else)
// collapses into one internal error carrying the original text.
func MapError(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}

	var wire *jsonrpc.Error
	if errors.As(err, &wire) {
		return wire
	}

	var de *docserr.DocsError
	if errors.As(err, &de) && de.Category == docserr.CategoryValidation {
		return NewInvalidParamsError(de.Message)
	}

	return NewInternalError(fmt.Sprintf("%s%v", searchFailedPrefix, err))
}

// ErrorMessage returns the text a client would see for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var wire *jsonrpc.Error
	if errors.As(err, &wire) {
		return wire.Message
	}
	return err.Error()
}
