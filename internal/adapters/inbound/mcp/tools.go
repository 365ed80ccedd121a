package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repolens/repolens/internal/adapters/outbound/depscan"
	"github.com/repolens/repolens/internal/adapters/outbound/endpoints"
	"github.com/repolens/repolens/internal/adapters/outbound/gitinfo"
	"github.com/repolens/repolens/internal/adapters/outbound/langscan"
	"github.com/repolens/repolens/internal/adapters/outbound/manifest"
	"github.com/repolens/repolens/internal/adapters/outbound/store"
	"github.com/repolens/repolens/internal/adapters/outbound/workspace"
	"github.com/repolens/repolens/internal/application"
	"github.com/repolens/repolens/internal/domain"
)

// registerTools registers all RepoLens MCP tools on the given server.
func registerTools(s *server.MCPServer, storePath, baseDir string) {
	s.AddTool(
		mcplib.NewTool("repolens_analyze",
			mcplib.WithDescription("Analyze a source-code zip archive and persist its knowledge record. Returns the record as JSON."),
			mcplib.WithString("zipfile",
				mcplib.Required(),
				mcplib.Description("Path to the zip archive to analyze"),
			),
		),
		handleAnalyze(storePath, baseDir),
	)

	s.AddTool(
		mcplib.NewTool("repolens_query",
			mcplib.WithDescription("List stored knowledge records containing an action manifest of the given type"),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Description("Manifest type to match: docker, node, composite or unknown"),
			),
		),
		handleQuery(storePath),
	)
}

func handleAnalyze(storePath, baseDir string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		zipPath, err := request.RequireString("zipfile")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		dir := baseDir
		if dir == "" {
			dir = os.TempDir()
		}
		svc := application.NewAnalyzeService(
			workspace.New(dir),
			manifest.New(),
			langscan.New(),
			depscan.New(),
			endpoints.New(),
			gitinfo.New(),
		)

		record, err := svc.Analyze(zipPath, application.NewAnalysisID(zipPath, time.Now()))
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		if err := store.New(storePath).Add(record); err != nil {
			return errorResult(fmt.Sprintf("persisting record failed: %v", err)), nil
		}

		return jsonResult(record)
	}
}

func handleQuery(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		typeName, err := request.RequireString("type")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !domain.ValidManifestType(typeName) {
			return errorResult(fmt.Sprintf("unknown manifest type %q", typeName)), nil
		}

		records, err := store.New(storePath).QueryByType(domain.ManifestType(typeName))
		if err != nil {
			return errorResult(fmt.Sprintf("query failed: %v", err)), nil
		}
		if records == nil {
			records = []domain.AnalysisRecord{}
		}
		return jsonResult(records)
	}
}

// jsonResult marshals v and returns it as text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
