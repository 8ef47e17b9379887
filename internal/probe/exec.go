package probe

import (
	"os/exec"

	"github.com/taigrr/clean/internal/types"
)

// ExecLauncher starts tools as detached child processes.
type ExecLauncher struct{}

// Launch starts the tool in dir and returns once the process is running.
// The exit status is never inspected; a goroutine reaps the child.
func (ExecLauncher) Launch(tool types.Tool, dir string) error {
	cmd := exec.Command(tool.Command, tool.Args...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
