// file: internal/mcp/types.go
package mcp

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// JSONMIMEType is the MIME type of every resource snapshot.
const JSONMIMEType = "application/json"

// ToolDefinition describes a tool as advertised to MCP clients.
type ToolDefinition struct {
	Name        string
	Title       string
	Description string
	InputSchema *jsonschema.Schema
	// Hints carried into the tool annotations.
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
}

// Tool converts the definition into the SDK representation.
func (d ToolDefinition) Tool() *sdk.Tool {
	destructive := d.Destructive
	return &sdk.Tool{
		Name:        d.Name,
		Title:       d.Title,
		Description: d.Description,
		InputSchema: d.InputSchema,
		Annotations: &sdk.ToolAnnotations{
			Title:           d.Title,
			ReadOnlyHint:    d.ReadOnly,
			DestructiveHint: &destructive,
			IdempotentHint:  d.Idempotent,
		},
	}
}

// ResourceDefinition describes a fixed resource URI.
type ResourceDefinition struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// Resource converts the definition into the SDK representation.
func (d ResourceDefinition) Resource() *sdk.Resource {
	return &sdk.Resource{
		URI:         d.URI,
		Name:        d.Name,
		Description: d.Description,
		MIMEType:    d.MIMEType,
	}
}

// MarshalPretty renders v as JSON indented with two spaces.
func MarshalPretty(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode JSON")
	}
	return string(data), nil
}

// TextResult builds a successful tool result: the summary first, then the
// structured payload (if any) as pretty JSON. The payload is also attached as
// structured content so clients that understand it need not parse text.
func TextResult(summary string, payload any) (*sdk.CallToolResult, error) {
	result := &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: summary}},
	}
	if payload == nil {
		return result, nil
	}
	text, err := MarshalPretty(payload)
	if err != nil {
		return nil, err
	}
	result.Content = append(result.Content, &sdk.TextContent{Text: text})
	result.StructuredContent = payload
	return result, nil
}

// ErrorResult builds an in-band tool failure with a single text entry.
func ErrorResult(message string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: message}},
		IsError: true,
	}
}

// ResultText concatenates the text entries of a tool result.
func ResultText(r *sdk.CallToolResult) []string {
	if r == nil {
		return nil
	}
	texts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if tc, ok := c.(*sdk.TextContent); ok {
			texts = append(texts, tc.Text)
		}
	}
	return texts
}

// JSONSnapshot wraps v as a single pretty-printed JSON resource content entry.
func JSONSnapshot(uri string, v any) (*sdk.ReadResourceResult, error) {
	text, err := MarshalPretty(v)
	if err != nil {
		return nil, err
	}
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{{
			URI:      uri,
			MIMEType: JSONMIMEType,
			Text:     text,
		}},
	}, nil
}
