package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP exposes every registered tool on an MCP server. Tool failures
// are reported as error results, not protocol errors.
func (r *Registry) RegisterMCP(srv *mcp.Server) {
	for _, tool := range r.List() {
		name := tool.Name
		srv.AddTool(&mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			resp, err := r.Call(ctx, name, req.Params.Arguments)
			if err != nil {
				var res mcp.CallToolResult
				res.SetError(err)
				return &res, nil
			}

			data, err := json.Marshal(resp)
			if err != nil {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("marshal: %w", err))
				return &res, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

// NewMCPServer creates an MCP server with the registry's tools
func (r *Registry) NewMCPServer(name, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	r.RegisterMCP(srv)
	return srv
}
