// Package mcp holds the glue between the Sonarr tool and resource registries and the
// external MCP protocol server.
// file: internal/mcp/errors.go
package mcp

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for registry lookups and argument validation.
var (
	ErrToolNotFound     = errors.New("Tool not found")
	ErrResourceNotFound = errors.New("Resource not found")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// NewToolNotFoundError reports an unknown tool name as "Tool not found: {name}".
func NewToolNotFoundError(name string) error {
	return errors.Mark(errors.Newf("Tool not found: %s", name), ErrToolNotFound)
}

// NewResourceNotFoundError reports an unknown resource URI as "Resource not found: {uri}".
func NewResourceNotFoundError(uri string) error {
	return errors.Mark(errors.Newf("Resource not found: %s", uri), ErrResourceNotFound)
}

// IsToolNotFoundError checks if an error is a tool-not-found error.
func IsToolNotFoundError(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}

// IsResourceNotFoundError checks if an error is a resource-not-found error.
func IsResourceNotFoundError(err error) bool {
	return errors.Is(err, ErrResourceNotFound)
}
