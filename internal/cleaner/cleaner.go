// Package cleaner walks a directory tree and deletes whatever the effective
// clean configuration of each directory matches.
package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/taigrr/clean/internal/cleanfile"
	"github.com/taigrr/clean/internal/types"
)

// Root is the path of the traversal root inside the service filesystem.
const Root = "."

// Logger receives progress and fault reports.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// Prober is invoked once per visited directory before deletion.
type Prober interface {
	Probe(dir string)
}

// Service cleans the tree below a root directory.
type Service struct {
	root     string
	fs       billy.Filesystem
	resolver *cleanfile.Resolver
	prober   Prober
	logger   Logger
}

// New creates a Service for the tree at root. A nil fs opens root on the
// host filesystem, a nil resolver reads the default configuration file name
// and a nil prober disables tool probing.
func New(root string, fsys billy.Filesystem, resolver *cleanfile.Resolver, prober Prober, logger Logger) *Service {
	absPath, err := filepath.Abs(root)
	if err != nil {
		absPath = root
	}
	if fsys == nil {
		fsys = osfs.New(absPath)
	}
	if resolver == nil {
		resolver = cleanfile.New(fsys, "")
	}
	if logger == nil {
		logger = discard{}
	}
	return &Service{
		root:     absPath,
		fs:       fsys,
		resolver: resolver,
		prober:   prober,
		logger:   logger,
	}
}

// Run cleans the whole tree, starting from the inherited base scope.
func (s *Service) Run(base *types.Scope) error {
	return s.Clean(Root, base)
}

// Clean visits dir: it resolves the effective scope, probes tools, deletes
// every match of the effective patterns and then recurses into each
// subdirectory found before deletion.
//
// An unreadable dir is logged and skipped. Errors from dir's own deletion
// phase are returned; errors from subdirectories are logged and do not stop
// their siblings.
func (s *Service) Clean(dir string, inherited *types.Scope) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Removed by a pattern match after it was enumerated.
			s.logger.LogDebug(fmt.Sprintf("skipping %s: no longer exists", s.LocalPath(dir)))
			return nil
		}
		s.logger.LogWarn(fmt.Sprintf("cannot read %s - check permissions: %v", s.LocalPath(dir), err))
		return nil
	}

	scope := inherited
	if local, ok := s.resolver.Resolve(dir); ok {
		scope = local
	}

	if s.prober != nil {
		s.prober.Probe(dir)
	}

	if err := s.removeMatches(dir, scope); err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := s.fs.Join(dir, entry.Name())
		if err := s.Clean(child, scope); err != nil {
			s.logger.LogError(err.Error())
		}
	}

	return nil
}

// removeMatches deletes the matches of every pattern in scope, stopping at
// the first failure. Malformed patterns are skipped.
func (s *Service) removeMatches(dir string, scope *types.Scope) error {
	for _, pattern := range scope.Patterns() {
		matches, err := s.expand(dir, pattern)
		if errors.Is(err, errBadPattern) {
			continue
		}
		if err != nil {
			return err
		}
		for _, match := range matches {
			if err := s.removePath(pattern, match); err != nil {
				return err
			}
		}
	}
	return nil
}

// removePath deletes a single match. Symbolic links are removed, never
// followed.
func (s *Service) removePath(pattern, path string) error {
	info, err := s.fs.Lstat(path)
	if err != nil {
		return &ExpandError{Pattern: pattern, Path: s.LocalPath(path), Err: err}
	}

	if info.IsDir() {
		err = util.RemoveAll(s.fs, path)
	} else {
		err = s.fs.Remove(path)
	}
	if err != nil {
		return &RemoveError{Path: s.LocalPath(path), IsDir: info.IsDir(), Err: err}
	}

	s.logger.LogInfo("removed " + s.LocalPath(path))
	return nil
}

// EffectiveScope returns the scope that applies in dir when the tree is
// cleaned from base: the nearest configuration file on the way from the
// root down to dir wins.
func (s *Service) EffectiveScope(dir string, base *types.Scope) (*types.Scope, error) {
	rel, err := s.ResolvePath(dir)
	if err != nil {
		return nil, err
	}

	scope := base
	current := Root
	for _, part := range splitPath(rel) {
		if local, ok := s.resolver.Resolve(current); ok {
			scope = local
		}
		current = s.fs.Join(current, part)
	}
	if local, ok := s.resolver.Resolve(current); ok {
		scope = local
	}
	return scope, nil
}

// CleanSubtree cleans dir with the scope its ancestors hand down, as if the
// whole tree had been cleaned from base.
func (s *Service) CleanSubtree(dir string, base *types.Scope) error {
	rel, err := s.ResolvePath(dir)
	if err != nil {
		return err
	}

	inherited := base
	if rel != Root {
		inherited, err = s.EffectiveScope(filepath.Dir(rel), base)
		if err != nil {
			return err
		}
	}
	return s.Clean(rel, inherited)
}

// ResolvePath converts a path relative to the root into a clean relative
// path, rejecting paths that escape the root.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	cleaned := filepath.Clean(filepath.FromSlash(relativePath))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}
	return cleaned, nil
}

// LocalPath returns the host path of a path inside the service filesystem.
func (s *Service) LocalPath(path string) string {
	return filepath.Join(s.root, path)
}

// RootPath returns the absolute path of the traversal root.
func (s *Service) RootPath() string {
	return s.root
}

func splitPath(rel string) []string {
	if rel == Root {
		return nil
	}
	return strings.Split(rel, string(filepath.Separator))
}

type discard struct{}

func (discard) LogDebug(string) {}
func (discard) LogInfo(string)  {}
func (discard) LogWarn(string)  {}
func (discard) LogError(string) {}
