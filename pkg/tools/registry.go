// Package tools runs the external PDF scanners whose output feeds the scorer.
package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/toyinlola/pdfsentry/pkg/interfaces"
)

// Target is the on-disk copy of the PDF being scanned.
type Target struct {
	// Path is the PDF file the tools read.
	Path string

	// Dir is a scratch directory owned by this scan. Tools may write into it.
	Dir string
}

// Tool is the interface that individual external scanners implement.
type Tool interface {
	// Name returns the unique identifier for this tool, used in reports.
	Name() string

	// Run invokes the tool against target. A non-nil error means the tool
	// could not be run at all; tool-level failures belong in the result.
	Run(ctx context.Context, target *Target) (*interfaces.ToolResult, error)
}

// Registry manages a collection of tools and tracks which are enabled.
// Registration order is preserved so reports list tools deterministically.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	tools   map[string]Tool
	enabled map[string]bool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		enabled: make(map[string]bool),
	}
}

// Register adds a tool to the registry. It is enabled by default.
// Returns an error if a tool with the same name is already registered.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tools: %q is already registered", name)
	}

	r.order = append(r.order, name)
	r.tools[name] = t
	r.enabled[name] = true
	return nil
}

// Get returns a tool by name. Returns nil if not found.
func (r *Registry) Get(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// List returns the names of all registered tools in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SetEnabled enables or disables a tool by name.
// Returns an error if the tool is not registered.
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("tools: %q is not registered", name)
	}
	r.enabled[name] = enabled
	return nil
}

// IsEnabled reports whether the named tool is enabled.
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// EnabledTools returns all enabled tools in registration order.
func (r *Registry) EnabledTools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Tool
	for _, name := range r.order {
		if r.enabled[name] {
			result = append(result, r.tools[name])
		}
	}
	return result
}
