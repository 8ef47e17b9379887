package cleaner

import "fmt"

// RemoveError reports a matched path that could not be deleted.
type RemoveError struct {
	Path  string
	IsDir bool
	Err   error
}

func (e *RemoveError) Error() string {
	kind := "file"
	if e.IsDir {
		kind = "directory"
	}
	return fmt.Sprintf("failed to remove %s; maybe %s is write-protected: %v", e.Path, kind, e.Err)
}

func (e *RemoveError) Unwrap() error {
	return e.Err
}

// ExpandError reports a path produced by a pattern that could not be inspected.
type ExpandError struct {
	Pattern string
	Path    string
	Err     error
}

func (e *ExpandError) Error() string {
	return fmt.Sprintf("cannot inspect %s matched by %q: %v", e.Path, e.Pattern, e.Err)
}

func (e *ExpandError) Unwrap() error {
	return e.Err
}
