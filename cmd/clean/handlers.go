package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func handleScope(ctx context.Context, req *mcp.CallToolRequest, input ScopeInput) (*mcp.CallToolResult, ScopeOutput, error) {
	path := strings.TrimSpace(input.Path)

	svc := cleanApp.service(nil)
	scope, err := svc.EffectiveScope(path, cleanApp.base)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScopeOutput{Path: path}, err
	}

	info := scope.Info()
	return nil, ScopeOutput{
		Path:     path,
		Present:  info.Present,
		Source:   info.Source,
		Patterns: info.Patterns,
	}, nil
}

func handleClean(ctx context.Context, req *mcp.CallToolRequest, input CleanInput) (*mcp.CallToolResult, CleanOutput, error) {
	path := strings.TrimSpace(input.Path)

	if input.Confirm != "yes" {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{Success: false, Path: path},
			fmt.Errorf("cleaning not confirmed: set confirm='yes' to proceed")
	}

	var buf bytes.Buffer
	svc := cleanApp.service(cleanApp.newLogger(&buf))
	err := svc.CleanSubtree(path, cleanApp.base)

	output := CleanOutput{
		Success: err == nil,
		Path:    path,
		Log:     logLines(buf.String()),
	}
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, output, err
	}
	return nil, output, nil
}

func logLines(text string) []string {
	lines := []string{}
	for line := range strings.Lines(text) {
		if line = strings.TrimRight(line, "\n"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
