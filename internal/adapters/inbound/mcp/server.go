package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewRepoLensMCPServer creates an MCP server exposing archive analysis and
// knowledge-base queries as tools. storePath locates the knowledge base;
// baseDir holds disposable workspaces (empty means the system temp dir).
func NewRepoLensMCPServer(storePath, baseDir string) *server.MCPServer {
	s := server.NewMCPServer(
		"repolens",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, storePath, baseDir)

	return s
}
