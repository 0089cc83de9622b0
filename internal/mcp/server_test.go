// file: internal/mcp/server_test.go
package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTools struct {
	calls []string
}

func (f *fakeTools) ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{{
		Name:        "echo",
		Description: "Echoes its input.",
		InputSchema: &jsonschema.Schema{Type: "object"},
		ReadOnly:    true,
		Idempotent:  true,
	}}
}

func (f *fakeTools) CallTool(_ context.Context, name string, args json.RawMessage) (*sdk.CallToolResult, error) {
	f.calls = append(f.calls, name+" "+string(args))
	return TextResult("echoed", map[string]any{"args": string(args)})
}

type fakeResources struct {
	reads int
	fail  error
}

func (f *fakeResources) ResourceDefinitions() []ResourceDefinition {
	return []ResourceDefinition{{URI: "test://thing", Name: "thing", MIMEType: JSONMIMEType}}
}

func (f *fakeResources) ReadResource(_ context.Context, uri string) (*sdk.ReadResourceResult, error) {
	f.reads++
	if f.fail != nil {
		return nil, f.fail
	}
	return JSONSnapshot(uri, map[string]int{"reads": f.reads})
}

type countingObserver struct {
	tools, reads int
}

func (o *countingObserver) ObserveToolCall(string, time.Duration, bool, error) { o.tools++ }
func (o *countingObserver) ObserveResourceRead(string, time.Duration, error)   { o.reads++ }

func TestToolManager_Lookup(t *testing.T) {
	tm := NewToolManager()
	tools := &fakeTools{}
	tm.RegisterProvider(tools)

	res, err := tm.CallTool(context.Background(), "echo", json.RawMessage(`{"a":1}`))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []string{"echo {\"a\":1}"}, tools.calls)

	_, err = tm.CallTool(context.Background(), "nope", nil)
	require.Error(t, err)
	assert.True(t, IsToolNotFoundError(err))
	assert.Equal(t, "Tool not found: nope", err.Error())
}

func TestResourceManager_Lookup(t *testing.T) {
	rm := NewResourceManager()
	rm.RegisterProvider(&fakeResources{})

	res, err := rm.ReadResource(context.Background(), "test://thing")
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, JSONMIMEType, res.Contents[0].MIMEType)
	assert.Equal(t, "{\n  \"reads\": 1\n}", res.Contents[0].Text)

	_, err = rm.ReadResource(context.Background(), "test://missing")
	require.Error(t, err)
	assert.True(t, IsResourceNotFoundError(err))
	assert.Equal(t, "Resource not found: test://missing", err.Error())
}

func TestResultHelpers(t *testing.T) {
	res, err := TextResult("summary only", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"summary only"}, ResultText(res))
	assert.Nil(t, res.StructuredContent)

	res, err = TextResult("with payload", map[string]int{"n": 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"with payload", "{\n  \"n\": 2\n}"}, ResultText(res))
	assert.NotNil(t, res.StructuredContent)

	errRes := ErrorResult("Failed to do it: boom")
	assert.True(t, errRes.IsError)
	assert.Equal(t, []string{"Failed to do it: boom"}, ResultText(errRes))
}

func TestToolDefinition_Annotations(t *testing.T) {
	tool := ToolDefinition{Name: "remove", InputSchema: &jsonschema.Schema{Type: "object"}, Destructive: true}.Tool()
	require.NotNil(t, tool.Annotations)
	require.NotNil(t, tool.Annotations.DestructiveHint)
	assert.True(t, *tool.Annotations.DestructiveHint)
	assert.False(t, tool.Annotations.ReadOnlyHint)
}

func connect(t *testing.T, s *Server) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	serverSession, err := s.SDK().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServer_EndToEnd(t *testing.T) {
	tools := &fakeTools{}
	resources := &fakeResources{}
	obs := &countingObserver{}

	tm := NewToolManager()
	tm.RegisterProvider(tools)
	rm := NewResourceManager()
	rm.RegisterProvider(resources)

	s, err := NewServer(ServerOptions{Name: "sonarr-mcp-test", Version: "test", Observer: obs}, tm, rm, nil)
	require.NoError(t, err)
	session := connect(t, s)
	ctx := context.Background()

	listed, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listed.Tools, 1)
	assert.Equal(t, "echo", listed.Tools[0].Name)

	res, err := session.CallTool(ctx, &sdk.CallToolParams{Name: "echo", Arguments: map[string]any{"x": "y"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, tools.calls, 1)

	read, err := session.ReadResource(ctx, &sdk.ReadResourceParams{URI: "test://thing"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	assert.Contains(t, read.Contents[0].Text, `"reads": 1`)

	resources.fail = errors.New("Failed to read thing: boom")
	_, err = session.ReadResource(ctx, &sdk.ReadResourceParams{URI: "test://thing"})
	require.Error(t, err, "resource failures propagate as protocol errors")
	assert.Contains(t, err.Error(), "boom")

	assert.Equal(t, 1, obs.tools)
	assert.Equal(t, 2, obs.reads)
}

func TestNewServer_RequiresName(t *testing.T) {
	_, err := NewServer(ServerOptions{}, nil, nil, nil)
	assert.Error(t, err)
}
