package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Return codes recorded when a command did not exit on its own.
const (
	ExitTimeout  = 124
	ExitNotFound = 127
)

// CommandOutput is the captured result of one external command.
type CommandOutput struct {
	ReturnCode int
	Stdout     string
	Stderr     string
}

// OK reports whether the command exited with status 0.
func (o CommandOutput) OK() bool {
	return o.ReturnCode == 0
}

// CommandRunner executes external commands. It never returns an error:
// failures to start or finish are folded into the return code.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) CommandOutput
	// LookPath reports where name would be found, like exec.LookPath.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates an os/exec backed runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath wraps exec.LookPath.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes name with args, killing it after timeout.
// Timeouts report ExitTimeout, start failures ExitNotFound. When ctx itself
// ends first, the result is also ExitTimeout but stderr names the abort
// instead of the per-tool timeout.
func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) CommandOutput {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := CommandOutput{Stdout: stdout.String(), Stderr: stderr.String()}

	switch {
	case err == nil:
		out.ReturnCode = 0
	case ctx.Err() != nil:
		out.ReturnCode = ExitTimeout
		out.Stderr = fmt.Sprintf("ABORTED: %v", ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		out.ReturnCode = ExitTimeout
		out.Stderr = fmt.Sprintf("TIMEOUT after %s", timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			out.ReturnCode = exitErr.ExitCode()
		} else {
			out.ReturnCode = ExitNotFound
			out.Stderr = fmt.Sprintf("ERROR: %v", err)
		}
	}
	return out
}
