package cleaner

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
)

const globstar = "**"

// errBadPattern marks a pattern that cannot be parsed.
var errBadPattern = errors.New("syntax error in pattern")

// expand returns the paths matched by pattern relative to dir, in lexical
// order. Segments are matched with doublestar: "**" spans zero or more
// directories and "[!...]" negates a class. dir and its ancestors are never
// returned, and a match nested under another match is dropped.
//
// A directory that cannot be read while expanding is an *ExpandError; one
// that does not exist simply contributes no matches.
func (s *Service) expand(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errBadPattern
	}
	cleaned := strings.TrimLeft(path.Clean(pattern), "/")
	if cleaned == "" {
		return nil, nil
	}

	found := map[string]bool{}
	if err := s.walk(pattern, dir, strings.Split(cleaned, "/"), found); err != nil {
		return nil, err
	}

	matches := make([]string, 0, len(found))
	for match := range found {
		if match == Root || match == dir || within(match, dir) {
			continue
		}
		matches = append(matches, match)
	}
	sort.Strings(matches)
	return pruneNested(matches), nil
}

func (s *Service) walk(pattern, base string, segments []string, found map[string]bool) error {
	if len(segments) == 0 {
		found[base] = true
		return nil
	}
	segment, rest := segments[0], segments[1:]

	if segment == globstar {
		if err := s.walk(pattern, base, rest, found); err != nil {
			return err
		}
		entries, err := s.readDir(pattern, base)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if err := s.walk(pattern, s.fs.Join(base, entry.Name()), segments, found); err != nil {
				return err
			}
		}
		return nil
	}

	if !hasMeta(segment) {
		next := s.fs.Join(base, segment)
		if len(rest) > 0 {
			return s.walk(pattern, next, rest, found)
		}
		if _, err := s.fs.Lstat(next); err != nil {
			if isMissing(err) {
				return nil
			}
			return &ExpandError{Pattern: pattern, Path: s.LocalPath(next), Err: err}
		}
		found[next] = true
		return nil
	}

	entries, err := s.readDir(pattern, base)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		ok, err := doublestar.Match(segment, entry.Name())
		if err != nil {
			return errBadPattern
		}
		if !ok || (len(rest) > 0 && !entry.IsDir()) {
			continue
		}
		if err := s.walk(pattern, s.fs.Join(base, entry.Name()), rest, found); err != nil {
			return err
		}
	}
	return nil
}

// readDir lists dir for expansion. Symbolic links are reported as links.
func (s *Service) readDir(pattern, dir string) ([]os.FileInfo, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, &ExpandError{Pattern: pattern, Path: s.LocalPath(dir), Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func hasMeta(segment string) bool {
	return strings.ContainsAny(segment, `*?[{\`)
}

// isMissing reports errors meaning "nothing to match here".
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, billy.ErrCrossedBoundary)
}

// within reports whether p lies strictly below ancestor.
func within(ancestor, p string) bool {
	if ancestor == Root {
		return p != Root
	}
	return strings.HasPrefix(p, ancestor+string(filepath.Separator)) || strings.HasPrefix(p, ancestor+"/")
}

// pruneNested drops every path below another path of sorted.
func pruneNested(sorted []string) []string {
	kept := sorted[:0]
	for _, p := range sorted {
		nested := false
		for _, k := range kept {
			if within(k, p) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, p)
		}
	}
	return kept
}
