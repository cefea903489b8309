package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"intelwire/internal/seed"
)

// NewSeedCmd creates the seed command, which installs the default
// configuration rows.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Install default sources, rules, patterns, terms and denylist",
		Long: `Seed loads the default configuration data: the feed source roster,
the sovereign classification doctrine, entity extraction patterns, the
offline translation dictionary and the source denylist. Seeding is
idempotent; existing rows are updated in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			n, err := seed.All(st)
			if err != nil {
				return err
			}

			fmt.Printf("Seeded %d configuration rows\n", n)
			return nil
		},
	}

	return cmd
}
