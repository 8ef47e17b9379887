package types

import "slices"

type (
	// Tool describes an external program whose native cleanup is triggered
	// when its marker file is present in a directory.
	Tool struct {
		Name    string   `json:"name" yaml:"name"`
		Markers []string `json:"markers" yaml:"markers"`
		Command string   `json:"command" yaml:"command"`
		Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
	}
)

// DefaultTools returns the built-in tool table.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "git", Markers: []string{".git"}, Command: "git", Args: []string{"gc", "--quiet"}},
		{Name: "cargo", Markers: []string{"Cargo.toml"}, Command: "cargo", Args: []string{"clean"}},
		{Name: "npm", Markers: []string{"package.json"}, Command: "npm", Args: []string{"cache", "clean", "--force"}},
		{Name: "pyclean", Markers: []string{"pyproject.toml", "setup.py"}, Command: "pyclean", Args: []string{"."}},
	}
}

// Invocation returns the command line that triggers the tool's cleanup.
func (t Tool) Invocation() []string {
	return append([]string{t.Command}, slices.Clone(t.Args)...)
}
