// Package main implements the clean command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

type options struct {
	noTools    bool
	logLevel   string
	configPath string
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCommand(),
		fang.WithVersion(getVersion()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "clean [directory]",
		Short: "Recursively delete files matched by .clean patterns",
		Long: `clean walks a directory tree and deletes everything matched by the glob
patterns listed in .clean files. A .clean file applies to its directory and
every directory below it until another .clean file replaces it; an empty
.clean file stops deletion for its subtree. The .clean file in your home
directory applies when the tree declares none.

When a directory holds a project marker (.git, Cargo.toml, package.json,
pyproject.toml, setup.py) and the matching tool is installed, the tool's own
cleanup is started in the background.`,
		Example: `clean
clean ~/src --no-tools
clean --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.noTools, "no-tools", false, "do not start tool cleanups")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error (default from settings)")
	flags.StringVar(&opts.configPath, "config", "", "settings file (default $CLEAN_CONFIG or <config dir>/clean/config.yaml)")

	cmd.AddCommand(newServeCommand(opts))
	return cmd
}

func runClean(cmd *cobra.Command, opts *options, args []string) error {
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

	svc := a.service(a.newLogger(cmd.ErrOrStderr()))
	if err := svc.Run(a.base); err != nil {
		return fmt.Errorf("cleaning %s: %w", svc.RootPath(), err)
	}
	return nil
}
