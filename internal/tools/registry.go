// internal/tools/registry.go
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"biblio/internal/pattern"
)

// Registry manages all available tools
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.tools[name] = tool
	log.Debug().Str("component", "tools").Str("tool", name).Msg(tool.Description())
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	return tool, nil
}

// Execute runs a tool against a binding and records how long it took
func (r *Registry) Execute(ctx context.Context, toolName string, binding pattern.Binding) (*Result, error) {
	tool, err := r.Get(toolName)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	result, err := tool.Execute(ctx, binding)
	duration := time.Since(startTime)

	if err != nil {
		log.Debug().Str("component", "tools").Str("tool", toolName).
			Dur("took", duration).Err(err).Msg("tool failed")
		return nil, err
	}

	result.Duration = duration
	log.Debug().Str("component", "tools").Str("tool", toolName).
		Dur("took", duration).Bool("end_session", result.EndSession).Msg("tool completed")

	return result, nil
}

// List returns all registered tool names and descriptions
func (r *Registry) List() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make(map[string]string)
	for name, tool := range r.tools {
		list[name] = tool.Description()
	}
	return list
}

// Names returns the registered tool names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
