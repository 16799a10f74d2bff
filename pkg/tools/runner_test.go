//go:build unix

package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExecRunner_Success(t *testing.T) {
	out := NewExecRunner().Run(context.Background(), time.Second, "sh", "-c", "echo /JS 1; echo warn >&2")
	assert.True(t, out.OK())
	assert.Equal(t, "/JS 1\n", out.Stdout)
	assert.Equal(t, "warn\n", out.Stderr)
}

func TestExecRunner_ExitCode(t *testing.T) {
	out := NewExecRunner().Run(context.Background(), time.Second, "sh", "-c", "exit 3")
	assert.False(t, out.OK())
	assert.Equal(t, 3, out.ReturnCode)
}

func TestExecRunner_NotFound(t *testing.T) {
	out := NewExecRunner().Run(context.Background(), time.Second, "definitely-not-a-real-binary-pdfsentry")
	assert.Equal(t, ExitNotFound, out.ReturnCode)
	assert.Contains(t, out.Stderr, "ERROR")
}

func TestExecRunner_Timeout(t *testing.T) {
	out := NewExecRunner().Run(context.Background(), 50*time.Millisecond, "sleep", "5")
	assert.Equal(t, ExitTimeout, out.ReturnCode)
	assert.Contains(t, out.Stderr, "TIMEOUT")
}

func TestExecRunner_ParentDeadlineIsNotToolTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := NewExecRunner().Run(ctx, 10*time.Second, "sleep", "5")
	assert.Equal(t, ExitTimeout, out.ReturnCode)
	assert.Contains(t, out.Stderr, "ABORTED")
	assert.Contains(t, out.Stderr, context.DeadlineExceeded.Error())
	assert.NotContains(t, out.Stderr, "TIMEOUT after")
}

func TestExecRunner_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewExecRunner().Run(ctx, time.Second, "sleep", "5")
	assert.Equal(t, ExitTimeout, out.ReturnCode)
	assert.Contains(t, out.Stderr, "ABORTED")
}
