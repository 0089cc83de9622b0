// file: internal/mcp/server.go
package mcp

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	json "github.com/goccy/go-json"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Observer receives one notification per tool call and resource read.
type Observer interface {
	ObserveToolCall(name string, duration time.Duration, isError bool, err error)
	ObserveResourceRead(uri string, duration time.Duration, err error)
}

// ServerOptions contains configurable options for the MCP server.
type ServerOptions struct {
	// Name and Version are reported to clients during initialization.
	Name    string
	Version string
	// Observer is optional.
	Observer Observer
}

// Server mounts tool and resource managers on the protocol server.
// Dispatch, sessions and the wire format are handled by the SDK.
type Server struct {
	sdk       *sdk.Server
	tools     *ToolManager
	resources *ResourceManager
	observer  Observer
	logger    logging.Logger
}

// NewServer creates a protocol server exposing every tool in tools and every
// resource in resources. Either manager may be nil to leave that surface empty.
func NewServer(opts ServerOptions, tools *ToolManager, resources *ResourceManager, logger logging.Logger) (*Server, error) {
	if opts.Name == "" {
		return nil, errors.New("server name is required")
	}
	if logger == nil {
		logger = logging.GetNoopLogger()
	}
	if tools == nil {
		tools = NewToolManager()
	}
	if resources == nil {
		resources = NewResourceManager()
	}

	s := &Server{
		sdk:       sdk.NewServer(&sdk.Implementation{Name: opts.Name, Version: opts.Version}, nil),
		tools:     tools,
		resources: resources,
		observer:  opts.Observer,
		logger:    logger.WithField("component", "mcp_server"),
	}

	for _, def := range tools.GetAllToolDefinitions() {
		if def.InputSchema == nil {
			return nil, errors.Newf("tool %q has no input schema", def.Name)
		}
		s.sdk.AddTool(def.Tool(), s.toolHandler(def.Name))
	}
	for _, def := range resources.GetAllResourceDefinitions() {
		s.sdk.AddResource(def.Resource(), s.readResource)
	}

	s.logger.Info("MCP server configured.",
		"tools", len(tools.GetAllToolDefinitions()),
		"resources", len(resources.GetAllResourceDefinitions()))
	return s, nil
}

// SDK returns the underlying protocol server.
func (s *Server) SDK() *sdk.Server { return s.sdk }

// Run serves the given transport until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context, t sdk.Transport) error {
	return s.sdk.Run(ctx, t)
}

// ServeSTDIO serves over stdin/stdout. Nothing else may write to stdout while it runs.
func (s *Server) ServeSTDIO(ctx context.Context) error {
	s.logger.Info("Starting server with stdio transport.")
	return s.Run(ctx, &sdk.StdioTransport{})
}

func (s *Server) toolHandler(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = json.RawMessage(req.Params.Arguments)
		}
		start := time.Now()
		result, err := s.tools.CallTool(ctx, name, args)
		isError := result != nil && result.IsError
		if s.observer != nil {
			s.observer.ObserveToolCall(name, time.Since(start), isError, err)
		}
		switch {
		case err != nil:
			s.logger.Error("Tool call failed.", "tool", name, "error", err)
		case isError:
			s.logger.Warn("Tool returned an error result.", "tool", name, "message", firstText(result))
		default:
			s.logger.Debug("Tool call completed.", "tool", name, "duration", time.Since(start).String())
		}
		return result, err
	}
}

func (s *Server) readResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	uri := ""
	if req != nil && req.Params != nil {
		uri = req.Params.URI
	}
	start := time.Now()
	result, err := s.resources.ReadResource(ctx, uri)
	if s.observer != nil {
		s.observer.ObserveResourceRead(uri, time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("Resource read failed.", "uri", uri, "error", err)
		if IsResourceNotFoundError(err) {
			return nil, sdk.ResourceNotFoundError(uri)
		}
		return nil, err
	}
	return result, nil
}

func firstText(r *sdk.CallToolResult) string {
	if texts := ResultText(r); len(texts) > 0 {
		return texts[0]
	}
	return ""
}
