// Package probe triggers the native cleanup of build and version-control
// tools whose marker files are present in a directory.
package probe

import (
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/taigrr/clean/internal/types"
)

// Logger is the subset of logger.ConsoleLogger used by the prober.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
}

// Launcher starts a tool's cleanup in a directory without waiting for it.
type Launcher interface {
	Launch(tool types.Tool, dir string) error
}

// Capabilities is the set of tools found on the system at startup.
// It is never modified after Detect returns.
type Capabilities struct {
	tools []types.Tool
}

// LookPathFunc reports where an executable lives, as exec.LookPath does.
type LookPathFunc func(file string) (string, error)

// Detect builds a Capabilities snapshot containing the tools whose command
// resolves through lookPath. A nil lookPath uses exec.LookPath.
func Detect(tools []types.Tool, lookPath LookPathFunc) *Capabilities {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	available := make([]types.Tool, 0, len(tools))
	for _, tool := range tools {
		if _, err := lookPath(tool.Command); err != nil {
			continue
		}
		available = append(available, tool)
	}
	return &Capabilities{tools: available}
}

// Tools returns the available tools.
func (c *Capabilities) Tools() []types.Tool {
	if c == nil {
		return nil
	}
	return slices.Clone(c.tools)
}

// Available reports whether the named tool was found.
func (c *Capabilities) Available(name string) bool {
	if c == nil {
		return false
	}
	return slices.ContainsFunc(c.tools, func(t types.Tool) bool { return t.Name == name })
}

// Prober checks directories for tool markers.
type Prober struct {
	fs       billy.Filesystem
	caps     *Capabilities
	launcher Launcher
	logger   Logger
	// localPath maps a filesystem path to the path handed to the launcher.
	localPath func(dir string) string
}

// New creates a Prober. localPath converts paths of fs into the paths the
// launcher runs commands in; nil keeps them unchanged.
func New(fs billy.Filesystem, caps *Capabilities, launcher Launcher, logger Logger, localPath func(string) string) *Prober {
	if localPath == nil {
		localPath = func(dir string) string { return dir }
	}
	return &Prober{
		fs:        fs,
		caps:      caps,
		launcher:  launcher,
		logger:    logger,
		localPath: localPath,
	}
}

// Probe launches the cleanup of every available tool with a marker directly
// inside dir. Launch failures are logged and otherwise ignored.
func (p *Prober) Probe(dir string) {
	for _, tool := range p.caps.Tools() {
		if !p.hasMarker(dir, tool) {
			continue
		}
		target := p.localPath(dir)
		if err := p.launcher.Launch(tool, target); err != nil {
			if p.logger != nil {
				p.logger.LogDebug(fmt.Sprintf("could not start %s in %s: %v", tool.Name, target, err))
			}
			continue
		}
		if p.logger != nil {
			p.logger.LogInfo(fmt.Sprintf("started %s in %s", strings.Join(tool.Invocation(), " "), target))
		}
	}
}

func (p *Prober) hasMarker(dir string, tool types.Tool) bool {
	for _, marker := range tool.Markers {
		if _, err := p.fs.Lstat(p.fs.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
