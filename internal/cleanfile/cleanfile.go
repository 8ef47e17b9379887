// Package cleanfile reads per-directory clean configuration files.
package cleanfile

import (
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/taigrr/clean/internal/types"
)

// DefaultFileName is the configuration file looked up in every directory.
const DefaultFileName = ".clean"

// commentMarker starts a line that is ignored.
const commentMarker = "#"

// Resolver resolves the locally declared pattern list of a directory.
type Resolver struct {
	fs       billy.Filesystem
	fileName string
}

// New creates a Resolver reading fileName from directories of fs.
// An empty fileName selects DefaultFileName.
func New(fs billy.Filesystem, fileName string) *Resolver {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Resolver{
		fs:       fs,
		fileName: fileName,
	}
}

// FileName returns the configuration file name the resolver looks for.
func (r *Resolver) FileName() string {
	return r.fileName
}

// Resolve returns the scope declared in dir. The boolean is false when dir
// holds no readable configuration file, in which case the caller keeps its
// inherited scope. An empty file yields an empty, present scope.
func (r *Resolver) Resolve(dir string) (*types.Scope, bool) {
	content, err := util.ReadFile(r.fs, r.fs.Join(dir, r.fileName))
	if err != nil {
		return nil, false
	}
	return types.NewScope(dir, Parse(string(content))), true
}

// Parse splits configuration content into patterns. Empty lines and lines
// starting with '#' are dropped; every other line is kept verbatim.
func Parse(content string) []string {
	patterns := []string{}
	for line := range strings.Lines(content) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
