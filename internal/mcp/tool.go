// internal/mcp/tool.go
package mcp

import (
	"context"

	json "github.com/goccy/go-json"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolProvider defines an interface for components that provide MCP tools.
type ToolProvider interface {
	// ToolDefinitions returns the tools this provider handles, in a stable order.
	ToolDefinitions() []ToolDefinition

	// CallTool executes a tool. Execution failures are reported in-band with
	// IsError set; a returned error means the call itself was invalid, such as
	// an unknown tool name.
	CallTool(ctx context.Context, name string, args json.RawMessage) (*sdk.CallToolResult, error)
}

// ToolManager routes calls to the registered tool providers.
type ToolManager struct {
	providers []ToolProvider
	byName    map[string]ToolProvider
}

// NewToolManager creates a new tool manager.
func NewToolManager() *ToolManager {
	return &ToolManager{byName: map[string]ToolProvider{}}
}

// RegisterProvider registers a ToolProvider. Tool names already claimed by an
// earlier provider keep their original owner.
func (tm *ToolManager) RegisterProvider(provider ToolProvider) {
	tm.providers = append(tm.providers, provider)
	for _, def := range provider.ToolDefinitions() {
		if _, exists := tm.byName[def.Name]; !exists {
			tm.byName[def.Name] = provider
		}
	}
}

// GetAllToolDefinitions returns all tool definitions from all providers.
func (tm *ToolManager) GetAllToolDefinitions() []ToolDefinition {
	var allTools []ToolDefinition
	for _, provider := range tm.providers {
		allTools = append(allTools, provider.ToolDefinitions()...)
	}
	return allTools
}

// FindToolProvider finds the provider for a specific tool name.
func (tm *ToolManager) FindToolProvider(name string) (ToolProvider, error) {
	if provider, ok := tm.byName[name]; ok {
		return provider, nil
	}
	return nil, NewToolNotFoundError(name)
}

// CallTool calls a tool across all providers.
func (tm *ToolManager) CallTool(ctx context.Context, name string, args json.RawMessage) (*sdk.CallToolResult, error) {
	provider, err := tm.FindToolProvider(name)
	if err != nil {
		return nil, err
	}
	return provider.CallTool(ctx, name, args)
}
