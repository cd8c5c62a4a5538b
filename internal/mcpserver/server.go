// Package mcpserver exposes the diff engine as an MCP (Model Context
// Protocol) tool over stdio, for editors and agents that talk MCP
// directly instead of the HTTP adapter.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/truespec/truespec"
)

const serverInstructions = `truespec MCP server — compares two OpenAPI documents and reports severity-classified differences.

Configuration: TRUESPEC_MCP_MAX_INLINE_SIZE (default: 2MB) caps inline content size; larger documents should be passed by file path instead.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or ctx is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "truespec", Version: truespec.Version()},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_specs",
		Description: "Compare a base and head OpenAPI document and report differences by severity (breaking, warning, info), with a stable code per finding. Use breaking_only=true to focus on compatibility breaks.",
	}, handleDiff)

	return server.Run(ctx, &mcp.StdioTransport{})
}
