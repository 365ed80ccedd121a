package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/adapters/outbound/codegen"
	"github.com/repolens/repolens/internal/adapters/outbound/depscan"
	"github.com/repolens/repolens/internal/adapters/outbound/endpoints"
	"github.com/repolens/repolens/internal/adapters/outbound/gitinfo"
	"github.com/repolens/repolens/internal/adapters/outbound/langscan"
	"github.com/repolens/repolens/internal/adapters/outbound/manifest"
	"github.com/repolens/repolens/internal/adapters/outbound/store"
	"github.com/repolens/repolens/internal/adapters/outbound/tui"
	"github.com/repolens/repolens/internal/adapters/outbound/workspace"
	"github.com/repolens/repolens/internal/application"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		baseDir    string
		storePath  string
		outDir     string
		analysisID string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <archive.zip>",
		Short: "Analyze a source archive and persist its knowledge record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zipPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolving archive path: %w", err)
			}
			if _, err := os.Stat(zipPath); err != nil {
				return fmt.Errorf("archive %s: %w", args[0], err)
			}

			if baseDir == "" {
				baseDir = os.TempDir()
			}
			if analysisID == "" {
				analysisID = application.NewAnalysisID(zipPath, time.Now())
			}

			svc := application.NewAnalyzeService(
				workspace.New(baseDir),
				manifest.New(),
				langscan.New(),
				depscan.New(),
				endpoints.New(),
				gitinfo.New(),
			)

			record, err := svc.Analyze(zipPath, analysisID)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			kb := store.New(storePath)
			if err := kb.Add(record); err != nil {
				return fmt.Errorf("persisting record: %w", err)
			}

			stub, err := codegen.New().Generate(record)
			if err != nil {
				return fmt.Errorf("generating code: %w", err)
			}
			stubPath := filepath.Join(outDir, fmt.Sprintf("generated_%s.go", analysisID))
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(stubPath, []byte(stub), 0o644); err != nil {
				return fmt.Errorf("writing generated code: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRecord(record))
			fmt.Fprintf(cmd.OutOrStdout(), "\ngenerated code written to %s\n", stubPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory for disposable workspaces (defaults to the system temp dir)")
	cmd.Flags().StringVar(&storePath, "store", "knowledge_base.json", "Path of the knowledge base file")
	cmd.Flags().StringVar(&outDir, "out", "generated_code", "Directory for generated code stubs")
	cmd.Flags().StringVar(&analysisID, "id", "", "Analysis identifier (defaults to <archive>_<timestamp>)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the record as JSON")

	return cmd
}
