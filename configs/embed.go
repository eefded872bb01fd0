// Package configs provides embedded configuration templates for paynow-docs-mcp.
//
// Templates are embedded at build time so `paynow-docs-mcp config init` works
// from any distribution (go install, binary release).
//
// Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults (internal/config NewConfig())
//  2. User config (~/.config/paynow-docs-mcp/config.yaml)
//  3. Explicit --config file
//  4. Environment variables (PAYNOW_DOCS_*)
package configs

import _ "embed"

// UserConfigTemplate is the template written by `paynow-docs-mcp config init`
// at ~/.config/paynow-docs-mcp/config.yaml.
//
//go:embed config.example.yaml
var UserConfigTemplate string
