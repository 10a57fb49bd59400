package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "takeoff-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := NewRegistry(Options{}).NewMCPServer(testMCPImpl.Name, testMCPImpl.Version)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) (*mcp.CallToolResult, string) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		return result, ""
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return result, tc.Text
}

func TestMCP_ListTools(t *testing.T) {
	session := mcpSession(t)

	res, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(res.Tools) != 6 {
		t.Errorf("expected 6 tools, got %d", len(res.Tools))
	}
}

func TestMCP_Echo(t *testing.T) {
	session := mcpSession(t)

	_, text := mcpCallTool(t, session, "echo", map[string]any{"message": "hello"})

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("message %q", resp.Message)
	}
}

func TestMCP_MeasureDistance(t *testing.T) {
	session := mcpSession(t)

	_, text := mcpCallTool(t, session, "measure_distance", map[string]any{
		"points":      []map[string]float64{{"x": 0, "y": 0}, {"x": 100, "y": 0}},
		"calibration": map[string]any{"pixels_per_unit": 10},
	})

	var resp MeasureResult
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Value != 10 || !resp.Measured || resp.Display != "10 ft" {
		t.Errorf("got %+v", resp)
	}
}

func TestMCP_ToolErrorIsResult(t *testing.T) {
	session := mcpSession(t)

	result, _ := mcpCallTool(t, session, "polygon_area", map[string]any{
		"points": []map[string]float64{{"x": 0, "y": 0}, {"x": 1, "y": 1}},
	})
	if !result.IsError {
		t.Fatal("expected tool error result")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected error content")
	}
	if tc, ok := result.Content[0].(*mcp.TextContent); !ok || !strings.Contains(tc.Text, "at least 3 points") {
		t.Errorf("unexpected error content %+v", result.Content[0])
	}
}
