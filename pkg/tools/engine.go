package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// Engine orchestrates running all enabled tools against a target.
type Engine struct {
	registry *Registry
}

// NewEngine creates a tool engine backed by the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Run executes all enabled tools against the target in parallel.
// A failing tool does not stop other tools from running.
// Results come back in registration order, one per tool that started.
// Respects context cancellation.
func (e *Engine) Run(ctx context.Context, target *Target) ([]interfaces.ToolResult, error) {
	if target == nil {
		return nil, fmt.Errorf("tools: target must not be nil")
	}

	enabled := e.registry.EnabledTools()
	if len(enabled) == 0 {
		slog.Info("no enabled tools to run")
		return nil, nil
	}

	slog.Info("starting tools", "tool_count", len(enabled))

	var (
		wg    sync.WaitGroup
		slots = make([]*interfaces.ToolResult, len(enabled))
	)

	for i, t := range enabled {
		wg.Add(1)
		go func(i int, t Tool) {
			defer wg.Done()

			// Check for context cancellation before starting.
			if ctx.Err() != nil {
				return
			}

			name := t.Name()
			start := time.Now()
			slog.Debug("running tool", "name", name)

			result, err := t.Run(ctx, target)
			elapsed := time.Since(start)
			if err == nil && result == nil {
				err = fmt.Errorf("tool %s returned no result", name)
			}

			if err != nil {
				slog.Error("tool failed", "name", name, "error", err, "duration", elapsed)
				result = &interfaces.ToolResult{
					Name:       name,
					ReturnCode: ExitNotFound,
					Stderr:     fmt.Sprintf("ERROR: %v", err),
				}
			} else {
				slog.Info("tool complete", "name", name, "ok", result.OK, "rc", result.ReturnCode, "duration", elapsed)
			}
			result.Duration = elapsed

			// Each goroutine owns its slot.
			slots[i] = result
		}(i, t)
	}

	// Tools observe ctx themselves; wait for all of them either way.
	wg.Wait()

	var runErr error
	if err := ctx.Err(); err != nil {
		slog.Warn("tool run cancelled", "error", err)
		runErr = err
	}

	results := make([]interfaces.ToolResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, runErr
}
