package main

import (
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var cleanApp *app

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve the cleaner as an MCP server over stdio",
		Long: `serve runs a Model Context Protocol server on stdin/stdout exposing two
tools: "scope" explains which .clean patterns apply to a directory and
"clean" cleans a directory below the served root.`,
		Example: `clean serve ~/src`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd, opts, args)
		},
	}
}

func runServer(cmd *cobra.Command, opts *options, args []string) error {
	var root string
	if len(args) > 0 {
		root = args[0]
	} else {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	a, err := newApp(opts, root)
	if err != nil {
		return err
	}
	cleanApp = a

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clean",
		Version: getVersion(),
	}, nil)

	registerTools(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}
