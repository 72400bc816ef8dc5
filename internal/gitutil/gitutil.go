package gitutil

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner is an interface for running external commands.
type CommandRunner interface {
	CombinedOutput(ctx context.Context, name string, arg ...string) ([]byte, error)
}

// DefaultRunner implements CommandRunner using os/exec.Command.
type DefaultRunner struct{}

func (r DefaultRunner) CombinedOutput(ctx context.Context, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	return cmd.CombinedOutput()
}

// We'll use a package-level variable for the runner
var runner CommandRunner = DefaultRunner{}

// HasUncommittedChanges reports whether path has uncommitted changes in its
// git worktree. Outside a git repository it reports false with no error, so
// the caller can skip the warning silently.
func HasUncommittedChanges(path string) (bool, error) {
	outputBytes, err := runner.CombinedOutput(context.Background(), "git", "status", "--porcelain", "--", path)
	output := string(outputBytes)
	if strings.Contains(strings.ToLower(output), "not a git repository") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error running git status: %w, output: %s", err, output)
	}
	return strings.TrimSpace(output) != "", nil
}

// For testing, we'll add a function to set a mock runner
func SetRunner(r CommandRunner) {
	runner = r
}
