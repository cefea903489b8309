package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command, which runs one full pipeline
// pass over every active feed source.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch all active feed sources and process new reports",
		Long: `Ingest runs the full pipeline once: every active feed source is
fetched, new entries are deduplicated against stored reports, filtered
through the denylist, translated, analyzed for entities, correlated
against recent reports, classified, and alerting rules are evaluated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			ctx := context.Background()
			orchestrator := buildPipeline(ctx, st)

			stats, err := orchestrator.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Ingestion complete: %d sources succeeded, %d failed\n", stats.Success, stats.Failed)
			return nil
		},
	}

	return cmd
}
