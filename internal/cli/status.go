package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a back-office overview",
		Long:  `Show montage counts, flagged orders, and upcoming installations with their readiness alerts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			montages, err := wire.MontageService().ListMontages(ctx, primary.MontageFilters{})
			if err != nil {
				return fmt.Errorf("failed to list montages: %w", err)
			}

			byStage := map[string]int{}
			for _, m := range montages {
				byStage[m.StatusLabel]++
			}
			fmt.Printf("Montages: %d\n", len(montages))
			for label, n := range byStage {
				fmt.Printf("  %s: %d\n", label, n)
			}

			flagged, err := wire.OrderService().ListOrders(ctx, primary.OrderFilters{AdminAttention: true})
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}
			if len(flagged) > 0 {
				fmt.Printf("\n%s Orders needing attention:\n", color.New(color.FgRed).Sprint("!"))
				for _, o := range flagged {
					fmt.Printf("  %s %s (%s)\n", o.ID, o.CustomerName, o.StageLabel)
				}
			}

			// Installations inside the warning window, with their alerts.
			window := time.Duration(Config().AlertWarningDays) * 24 * time.Hour
			now := time.Now()
			printedHeader := false
			for _, m := range montages {
				if m.ScheduledInstallationAt == "" {
					continue
				}
				at, err := time.Parse(time.RFC3339, m.ScheduledInstallationAt)
				if err != nil || at.Before(now) || at.Sub(now) > window {
					continue
				}
				if !printedHeader {
					fmt.Printf("\nUpcoming installations (next %d days):\n", Config().AlertWarningDays)
					printedHeader = true
				}
				fmt.Printf("  %s %s (%s)\n", m.ID, m.CustomerName, m.ScheduledInstallationAt)

				alerts, err := wire.MontageService().GetAlerts(ctx, m.ID)
				if err != nil {
					continue
				}
				if alerts.Material != nil {
					fmt.Printf("    %s %s\n", alertBadge(alerts.Material.Level), alerts.Material.Message)
				}
				if alerts.Installer != nil {
					fmt.Printf("    %s %s\n", alertBadge(alerts.Installer.Level), alerts.Installer.Message)
				}
			}

			return nil
		},
	}
}
