// Package types defines the data structures shared by the cleaner packages.
package types

import "slices"

type (
	// Scope is an immutable pattern list together with the directory whose
	// configuration file declared it. A nil *Scope means no configuration
	// applies.
	Scope struct {
		patterns []string
		source   string
	}

	// ScopeInfo is the serializable view of a Scope.
	ScopeInfo struct {
		Present  bool     `json:"present"`
		Source   string   `json:"source,omitempty"`
		Patterns []string `json:"patterns"`
	}
)

// NewScope creates a Scope declared by the configuration file in source.
func NewScope(source string, patterns []string) *Scope {
	return &Scope{
		patterns: slices.Clone(patterns),
		source:   source,
	}
}

// Patterns returns a copy of the scope's patterns in declaration order.
func (s *Scope) Patterns() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.patterns)
}

// Source returns the directory whose configuration file declared the scope.
func (s *Scope) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Len returns the number of patterns.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Info converts the scope to its serializable form.
func (s *Scope) Info() ScopeInfo {
	if s == nil {
		return ScopeInfo{Patterns: []string{}}
	}
	patterns := s.Patterns()
	if patterns == nil {
		patterns = []string{}
	}
	return ScopeInfo{
		Present:  true,
		Source:   s.source,
		Patterns: patterns,
	}
}
