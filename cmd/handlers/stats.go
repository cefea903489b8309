package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command, which prints store counters.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stored report, source, entity and notification counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			stats, err := st.GetStats()
			if err != nil {
				return err
			}

			fmt.Printf("Sources:       %d\n", stats.SourceCount)
			fmt.Printf("Reports:       %d\n", stats.ReportCount)
			fmt.Printf("Entities:      %d\n", stats.EntityCount)
			fmt.Printf("Notifications: %d\n", stats.NotificationCount)
			return nil
		},
	}

	return cmd
}
