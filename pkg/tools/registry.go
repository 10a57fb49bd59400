// Package tools exposes the takeoff engine as named tools with JSON
// arguments. The same registry is served over MCP and over HTTP.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/philipparndt/takeoff/pkg/analysis"
	"github.com/philipparndt/takeoff/pkg/takeoff"
)

var (
	// ErrUnknownTool is returned by Call for a name that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments wraps argument decoding and validation failures.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrNotFound is returned when a referenced file does not exist.
	ErrNotFound = errors.New("not found")
)

// Handler runs a tool against raw JSON arguments
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Tool describes one callable operation
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
	Handler     Handler        `json:"-"`
}

// Options configures a registry
type Options struct {
	Logger *slog.Logger
	// Unit applies when a call names none
	Unit takeoff.Unit
	// DominanceThreshold overrides the insight aggregator's default
	DominanceThreshold float64
	// ParallelTolerance in degrees; DefaultParallelTolerance when zero
	ParallelTolerance float64
	// BaseDir restricts file-reading tools to paths below it when set
	BaseDir string
}

// Registry holds the tool set
type Registry struct {
	logger            *slog.Logger
	unit              takeoff.Unit
	aggregator        analysis.Aggregator
	parallelTolerance float64
	baseDir           string
	tools             map[string]Tool
}

// NewRegistry creates a registry with every built-in tool registered
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	unit := opts.Unit
	if unit == "" {
		unit = takeoff.Feet
	}
	agg := analysis.NewAggregator()
	if opts.DominanceThreshold > 0 {
		agg.DominanceThreshold = opts.DominanceThreshold
	}

	tolerance := opts.ParallelTolerance
	if tolerance <= 0 {
		tolerance = DefaultParallelTolerance
	}

	r := &Registry{
		logger:            logger,
		unit:              unit,
		aggregator:        agg,
		parallelTolerance: tolerance,
		baseDir:           opts.BaseDir,
		tools:             make(map[string]Tool),
	}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a tool
func (r *Registry) Register(tool Tool) {
	r.tools[tool.Name] = tool
}

// List returns the tools sorted by name
func (r *Registry) List() []Tool {
	list := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Call runs the named tool
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	start := time.Now()
	resp, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.Warn("tool failed", "tool", name, "error", err, "duration", time.Since(start))
		return nil, err
	}
	r.logger.Debug("tool called", "tool", name, "duration", time.Since(start))
	return resp, nil
}

func decode(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}
