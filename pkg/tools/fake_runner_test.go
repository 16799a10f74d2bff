package tools

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// call records one invocation seen by fakeRunner.
type call struct {
	Timeout time.Duration
	Name    string
	Args    []string
}

// fakeRunner returns canned outputs keyed by the joined command line.
type fakeRunner struct {
	mu       sync.Mutex
	calls    []call
	outputs  map[string]CommandOutput
	fallback CommandOutput
	onPath   map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]CommandOutput),
		onPath:  make(map[string]bool),
	}
}

func (f *fakeRunner) Run(_ context.Context, timeout time.Duration, name string, args ...string) CommandOutput {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call{Timeout: timeout, Name: name, Args: args})
	key := strings.Join(append([]string{name}, args...), " ")
	for prefix, out := range f.outputs {
		if strings.HasPrefix(key, prefix) {
			return out
		}
	}
	return f.fallback
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.onPath[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeRunner) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}
