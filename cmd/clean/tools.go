package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// ScopeInput contains parameters for looking up a directory's scope.
	ScopeInput struct {
		Path string `json:"path,omitempty" jsonschema:"Directory relative to the served root (default: root)"`
	}

	// ScopeOutput describes the patterns that apply to a directory.
	ScopeOutput struct {
		Path     string   `json:"path"`
		Present  bool     `json:"present"`
		Source   string   `json:"source,omitempty"`
		Patterns []string `json:"patterns"`
	}

	// CleanInput contains parameters for cleaning a directory.
	CleanInput struct {
		Path    string `json:"path,omitempty" jsonschema:"Directory relative to the served root (default: root)"`
		Confirm string `json:"confirm" jsonschema:"Must be set to 'yes' to confirm deletion"`
	}

	// CleanOutput contains the result of a clean run.
	CleanOutput struct {
		Success bool     `json:"success"`
		Path    string   `json:"path"`
		Log     []string `json:"log"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scope",
		Description: "Show which .clean patterns apply to a directory and which directory declared them. Nothing is deleted.",
	}, handleScope)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clean",
		Description: "Recursively delete everything matched by the effective .clean patterns in a directory and its subdirectories. Requires confirm='yes'. This cannot be undone.",
	}, handleClean)
}
