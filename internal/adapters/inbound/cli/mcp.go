package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/repolens/repolens/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the RepoLens MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		storePath string
		baseDir   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start RepoLens MCP server (stdio)",
		Long:  "Start the RepoLens MCP server using stdio transport, exposing archive analysis and knowledge-base queries as tools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewRepoLensMCPServer(storePath, baseDir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "knowledge_base.json", "Path of the knowledge base file")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory for disposable workspaces (defaults to the system temp dir)")

	return cmd
}
