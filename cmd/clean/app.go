package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/taigrr/clean/internal/cleaner"
	"github.com/taigrr/clean/internal/cleanfile"
	"github.com/taigrr/clean/internal/config"
	"github.com/taigrr/clean/internal/logger"
	"github.com/taigrr/clean/internal/probe"
	"github.com/taigrr/clean/internal/types"
)

// app holds everything resolved once per process.
type app struct {
	root     string
	settings *config.Settings
	logLevel string
	fsys     billy.Filesystem
	// caps is nil when tool probing is disabled.
	caps *probe.Capabilities
	// base is the scope declared in the home directory, if any.
	base *types.Scope
}

func newApp(opts *options, root string) (*app, error) {
	path := opts.configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logLevel := settings.LogLevel
	if opts.logLevel != "" {
		if !logger.ValidLevel(opts.logLevel) {
			return nil, fmt.Errorf("invalid log level %q", opts.logLevel)
		}
		logLevel = opts.logLevel
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	a := &app{
		root:     absRoot,
		settings: settings,
		logLevel: logLevel,
		fsys:     osfs.New(absRoot),
	}
	if settings.ProbeTools && !opts.noTools {
		a.caps = probe.Detect(settings.Tools(), nil)
	}
	if home, err := config.HomeDir(); err == nil {
		a.base = homeScope(home, settings.FileName)
	}
	return a, nil
}

// homeScope resolves the configuration file in the home directory.
func homeScope(home, fileName string) *types.Scope {
	scope, ok := cleanfile.New(osfs.New(home), fileName).Resolve(cleaner.Root)
	if !ok {
		return nil
	}
	return types.NewScope(home, scope.Patterns())
}

func (a *app) newLogger(w io.Writer) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(w, a.logLevel)
}

// service wires a cleaner for the root that reports to log.
func (a *app) service(log *logger.ConsoleLogger) *cleaner.Service {
	var prober cleaner.Prober
	if a.caps != nil {
		localPath := func(dir string) string { return filepath.Join(a.root, dir) }
		prober = probe.New(a.fsys, a.caps, probe.ExecLauncher{}, log, localPath)
	}
	resolver := cleanfile.New(a.fsys, a.settings.FileName)
	return cleaner.New(a.root, a.fsys, resolver, prober, log)
}
