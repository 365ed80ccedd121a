package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/adapters/outbound/store"
	"github.com/repolens/repolens/internal/adapters/outbound/tui"
	"github.com/repolens/repolens/internal/domain"
)

func newQueryCmd() *cobra.Command {
	var (
		typeName   string
		storePath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List stored records by action manifest type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidManifestType(typeName) {
				return fmt.Errorf("unknown manifest type %q (want docker, node, composite or unknown)", typeName)
			}
			t := domain.ManifestType(typeName)

			records, err := store.New(storePath).QueryByType(t)
			if err != nil {
				return fmt.Errorf("querying knowledge base: %w", err)
			}

			if jsonOutput {
				if records == nil {
					records = []domain.AnalysisRecord{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderQueryResults(t, records))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "Manifest type to match (docker, node, composite, unknown)")
	cmd.Flags().StringVar(&storePath, "store", "knowledge_base.json", "Path of the knowledge base file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output matching records as JSON")
	cmd.MarkFlagRequired("type")

	return cmd
}
