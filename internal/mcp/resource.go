// internal/mcp/resource.go
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResourceProvider defines an interface for components that provide MCP resources.
type ResourceProvider interface {
	// ResourceDefinitions returns the resources this provider handles, in a stable order.
	ResourceDefinitions() []ResourceDefinition

	// ReadResource fetches a fresh snapshot of the resource at uri.
	ReadResource(ctx context.Context, uri string) (*sdk.ReadResourceResult, error)
}

// ResourceManager routes reads to the registered resource providers.
type ResourceManager struct {
	providers []ResourceProvider
	byURI     map[string]ResourceProvider
}

// NewResourceManager creates a new resource manager.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{byURI: map[string]ResourceProvider{}}
}

// RegisterProvider registers a ResourceProvider.
func (rm *ResourceManager) RegisterProvider(provider ResourceProvider) {
	rm.providers = append(rm.providers, provider)
	for _, def := range provider.ResourceDefinitions() {
		if _, exists := rm.byURI[def.URI]; !exists {
			rm.byURI[def.URI] = provider
		}
	}
}

// GetAllResourceDefinitions returns all resource definitions from all providers.
func (rm *ResourceManager) GetAllResourceDefinitions() []ResourceDefinition {
	var allResources []ResourceDefinition
	for _, provider := range rm.providers {
		allResources = append(allResources, provider.ResourceDefinitions()...)
	}
	return allResources
}

// FindResourceProvider finds the provider for a specific resource URI.
func (rm *ResourceManager) FindResourceProvider(uri string) (ResourceProvider, error) {
	if provider, ok := rm.byURI[uri]; ok {
		return provider, nil
	}
	return nil, NewResourceNotFoundError(uri)
}

// ReadResource reads a resource across all providers.
func (rm *ResourceManager) ReadResource(ctx context.Context, uri string) (*sdk.ReadResourceResult, error) {
	provider, err := rm.FindResourceProvider(uri)
	if err != nil {
		return nil, err
	}
	return provider.ReadResource(ctx, uri)
}
