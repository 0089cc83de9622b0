// file: internal/tools/registry.go
package tools

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/schema"
	json "github.com/goccy/go-json"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// handlerFunc runs a tool against already validated arguments. A returned error is
// reported in-band as the tool's failure message.
type handlerFunc func(ctx context.Context, args json.RawMessage) (*sdk.CallToolResult, error)

// tool pairs a definition with its handler. Verb completes "Failed to ..." messages.
type tool struct {
	def     mcp.ToolDefinition
	verb    string
	handler handlerFunc
}

// Registry is the immutable tool catalog. It implements mcp.ToolProvider.
type Registry struct {
	api       API
	tools     map[string]tool
	order     []string
	validator *schema.Validator
	logger    logging.Logger
	now       func() time.Time
}

var _ mcp.ToolProvider = (*Registry)(nil)

// Option customizes a Registry.
type Option func(*Registry)

// WithClock replaces the wall clock used for date windows.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// BuildRegistry creates the catalog of Sonarr tools. Every input schema is compiled
// up front, so a malformed catalog fails here rather than on first use.
func BuildRegistry(api API, logger logging.Logger, opts ...Option) (*Registry, error) {
	if api == nil {
		return nil, errors.New("tools: Sonarr API is required")
	}
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	r := &Registry{
		api:       api,
		tools:     make(map[string]tool),
		validator: schema.NewValidator(logger),
		logger:    logger.WithField("component", "tool_registry"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, t := range r.catalog() {
		name := t.def.Name
		if err := schema.ValidateName(schema.EntityTypeTool, name); err != nil {
			return nil, errors.Wrap(err, "tools: invalid tool name")
		}
		if _, dup := r.tools[name]; dup {
			return nil, errors.Newf("tools: duplicate tool name %q", name)
		}
		if err := r.validator.AddSchema(name, t.def.InputSchema); err != nil {
			return nil, errors.Wrapf(err, "tools: input schema for %q", name)
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	r.logger.Debug("Tool registry built.", "tools", len(r.order))
	return r, nil
}

// ToolDefinitions returns the catalog in declaration order.
func (r *Registry) ToolDefinitions() []mcp.ToolDefinition {
	defs := make([]mcp.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// CallTool runs the named tool. Only an unknown name is returned as an error;
// invalid arguments and execution failures come back as IsError results.
func (r *Registry) CallTool(ctx context.Context, name string, args json.RawMessage) (*sdk.CallToolResult, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, mcp.NewToolNotFoundError(name)
	}
	if err := r.validator.Validate(name, args); err != nil {
		return r.failure(t, invalidArguments("%s", err.Error())), nil
	}
	return r.execute(ctx, t, args), nil
}

func (r *Registry) execute(ctx context.Context, t tool, args json.RawMessage) (result *sdk.CallToolResult) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Tool handler panicked.", "tool", t.def.Name, "panic", p)
			result = r.failure(t, errors.Newf("internal error: %v", p))
		}
	}()

	res, err := t.handler(ctx, args)
	if err != nil {
		return r.failure(t, err)
	}
	if res == nil {
		return r.failure(t, errors.New("tool produced no result"))
	}
	return res
}

func (r *Registry) failure(t tool, err error) *sdk.CallToolResult {
	r.logger.Warn("Tool call failed.", "tool", t.def.Name, "error", err)
	return mcp.ErrorResult(fmt.Sprintf("Failed to %s: %s", t.verb, err.Error()))
}

// invalidArguments reports input the schema cannot express, such as fields that
// are required only in combination.
func invalidArguments(format string, args ...any) error {
	return errors.Mark(errors.Newf("invalid arguments: "+format, args...), mcp.ErrInvalidArguments)
}

// bind decodes validated arguments over the defaults returned by newInput and
// calls fn with the typed input.
func bind[T any](newInput func() T, fn func(ctx context.Context, in T) (*sdk.CallToolResult, error)) handlerFunc {
	return func(ctx context.Context, args json.RawMessage) (*sdk.CallToolResult, error) {
		in := newInput()
		trimmed := bytes.TrimSpace(args)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &in); err != nil {
				return nil, invalidArguments("%v", err)
			}
		}
		return fn(ctx, in)
	}
}

// noInput adapts a handler that takes no arguments.
func noInput(fn func(ctx context.Context) (*sdk.CallToolResult, error)) handlerFunc {
	return func(ctx context.Context, _ json.RawMessage) (*sdk.CallToolResult, error) {
		return fn(ctx)
	}
}
