package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the settings file at temp directories.
func isolate(t *testing.T, homeClean string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLEAN_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	if homeClean != "" {
		require.NoError(t, os.WriteFile(filepath.Join(home, ".clean"), []byte(homeClean), 0o644))
	}
	return home
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stderr.String(), err
}

func TestRunClean(t *testing.T) {
	t.Run("cleans the given directory", func(t *testing.T) {
		isolate(t, "")
		root := writeTree(t, map[string]string{
			".clean":       "*.o",
			"main.o":       "",
			"main.c":       "",
			"lib/.clean":   "",
			"lib/keep.o":   "",
			"other/junk.o": "",
		})

		logs, err := execute(t, root, "--no-tools")
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(root, "main.o"))
		assert.NoFileExists(t, filepath.Join(root, "other", "junk.o"))
		assert.FileExists(t, filepath.Join(root, "main.c"))
		assert.FileExists(t, filepath.Join(root, "lib", "keep.o"))
		assert.Contains(t, logs, "[INFO] removed "+filepath.Join(root, "main.o"))
	})

	t.Run("home configuration is the starting scope", func(t *testing.T) {
		isolate(t, "*.bak\n")
		root := writeTree(t, map[string]string{
			"notes.bak":    "",
			"notes.txt":    "",
			"deep/old.bak": "",
			"local/.clean": "*.txt",
			"local/a.bak":  "",
			"local/a.txt":  "",
		})

		_, err := execute(t, root, "--no-tools")
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(root, "notes.bak"))
		assert.NoFileExists(t, filepath.Join(root, "deep", "old.bak"))
		assert.FileExists(t, filepath.Join(root, "notes.txt"))
		assert.FileExists(t, filepath.Join(root, "local", "a.bak"))
		assert.NoFileExists(t, filepath.Join(root, "local", "a.txt"))
	})

	t.Run("log level flag filters output", func(t *testing.T) {
		isolate(t, "")
		root := writeTree(t, map[string]string{".clean": "x", "x": ""})

		logs, err := execute(t, root, "--no-tools", "--log-level", "error")
		require.NoError(t, err)
		assert.Empty(t, logs)
		assert.NoFileExists(t, filepath.Join(root, "x"))
	})

	t.Run("invalid log level fails", func(t *testing.T) {
		isolate(t, "")
		_, err := execute(t, t.TempDir(), "--log-level", "loud")
		assert.ErrorContains(t, err, "invalid log level")
	})

	t.Run("malformed settings fail", func(t *testing.T) {
		isolate(t, "")
		settings := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(settings, []byte("log_level: [\n"), 0o644))

		_, err := execute(t, t.TempDir(), "--config", settings)
		assert.ErrorContains(t, err, "parse settings")
	})

	t.Run("settings select the file name", func(t *testing.T) {
		isolate(t, "")
		settings := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(settings, []byte("file_name: .tidy\nprobe_tools: false\n"), 0o644))
		root := writeTree(t, map[string]string{
			".tidy":  "a",
			".clean": "b",
			"a":      "",
			"b":      "",
		})

		_, err := execute(t, root, "--config", settings)
		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(root, "a"))
		assert.FileExists(t, filepath.Join(root, "b"))
	})

	t.Run("root deletion failure is an error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		isolate(t, "")
		root := writeTree(t, map[string]string{".clean": "x", "x": ""})
		require.NoError(t, os.Chmod(root, 0o555))
		t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

		_, err := execute(t, root, "--no-tools")
		assert.ErrorContains(t, err, "write-protected")
	})
}

func TestHomeScope(t *testing.T) {
	home := t.TempDir()
	assert.Nil(t, homeScope(home, ".clean"))

	require.NoError(t, os.WriteFile(filepath.Join(home, ".clean"), []byte("# global\n*.swp\n"), 0o644))
	scope := homeScope(home, ".clean")
	require.NotNil(t, scope)
	assert.Equal(t, home, scope.Source())
	assert.Equal(t, []string{"*.swp"}, scope.Patterns())
}

func TestNewApp_Probing(t *testing.T) {
	isolate(t, "")

	a, err := newApp(&options{noTools: true}, t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, a.caps)

	a, err = newApp(&options{}, t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, a.caps)
}
