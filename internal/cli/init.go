package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/montage/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the montage database",
		Long:  `Initialize the montage database at the configured path with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing montage database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if seed {
				database, err := db.GetDB()
				if err != nil {
					return err
				}
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Development fixtures seeded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  montage montage create \"Jan Kowalski\" --address \"ul. Długa 12\"")
			fmt.Println("  montage status")

			return nil
		},
	}

	cmd.Flags().Bool("seed", false, "Seed development fixtures")
	return cmd
}
