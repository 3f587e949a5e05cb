// ABOUTME: Name-keyed tool registry built once at startup and passed into the loop
// ABOUTME: Validates arguments against each tool's JSON Schema and isolates tool panics

package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// Registry maps tool names to tools. It is immutable after construction
// and therefore safe to share between concurrent runs.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*gojsonschema.Schema
}

// NewRegistry builds a registry from tools. Duplicate names and
// schemas that do not compile are reported as errors.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools:   make(map[string]Tool, len(tools)),
		schemas: make(map[string]*gojsonschema.Schema, len(tools)),
	}
	for _, t := range tools {
		name := t.Name()
		if _, dup := r.tools[name]; dup {
			return nil, fmt.Errorf("duplicate tool %q", name)
		}
		if raw := t.Schema(); len(raw) > 0 {
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				return nil, fmt.Errorf("compiling schema for %s: %w", name, err)
			}
			r.schemas[name] = schema
		}
		r.tools[name] = t
	}
	return r, nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the tool definitions sorted by name for deterministic requests.
func (r *Registry) Definitions() []ToolDefinition {
	names := r.Names()
	defs := make([]ToolDefinition, len(names))
	for i, name := range names {
		t := r.tools[name]
		defs[i] = ToolDefinition{Name: name, Description: t.Description(), Parameters: t.Schema()}
	}
	return defs
}

// Execute dispatches one invocation. Unknown tools, invalid arguments, and
// panics all become failed results; Execute never aborts the caller.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result ToolResult) {
	t, ok := r.tools[name]
	if !ok {
		return Failure("Unknown tool: " + name)
	}
	if args == nil {
		args = make(map[string]any)
	}

	if err := r.validate(name, args); err != nil {
		return Failure(err.Error())
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			result = Failure(fmt.Sprintf("tool %s panicked: %v", name, p))
		}
		result.Duration = time.Since(start)
	}()

	return t.Execute(ctx, args)
}

func (r *Registry) validate(name string, args map[string]any) error {
	schema, ok := r.schemas[name]
	if !ok {
		return nil
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("invalid arguments for %s: %w", name, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid arguments for %s: %s", name, strings.Join(msgs, "; "))
}
