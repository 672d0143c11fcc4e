package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/wire"
)

var montageCmd = &cobra.Command{
	Use:   "montage",
	Short: "Manage montages (installation processes)",
	Long:  "Create, list, schedule, and advance montages through their stages",
}

var montageCreateCmd = &cobra.Command{
	Use:   "create [customer-name]",
	Short: "Create a new montage",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		address, _ := cmd.Flags().GetString("address")
		installerID, _ := cmd.Flags().GetString("installer")
		measurerID, _ := cmd.Flags().GetString("measurer")

		if installerID == "" {
			installerID = Config().DefaultInstallerID
		}

		resp, err := wire.MontageService().CreateMontage(ctx, primary.CreateMontageRequest{
			CustomerName: strings.Join(args, " "),
			Address:      address,
			InstallerID:  installerID,
			MeasurerID:   measurerID,
		})
		if err != nil {
			return fmt.Errorf("failed to create montage: %w", err)
		}

		fmt.Printf("✓ Created montage %s: %s\n", resp.MontageID, resp.Montage.CustomerName)
		fmt.Printf("  Stage: %s\n", resp.Montage.StatusLabel)
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Printf("  montage checklist init %s\n", resp.MontageID)
		return nil
	},
}

var montageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List montages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		status, _ := cmd.Flags().GetString("status")
		installerID, _ := cmd.Flags().GetString("installer")
		measurerID, _ := cmd.Flags().GetString("measurer")

		montages, err := wire.MontageService().ListMontages(ctx, primary.MontageFilters{
			Status:      status,
			InstallerID: installerID,
			MeasurerID:  measurerID,
		})
		if err != nil {
			return fmt.Errorf("failed to list montages: %w", err)
		}

		if len(montages) == 0 {
			fmt.Println("No montages found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tSTAGE\tMATERIAL\tINSTALLER\tSCHEDULED")
		fmt.Fprintln(w, "--\t--------\t-----\t--------\t---------\t---------")
		for _, m := range montages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.CustomerName, m.StatusLabel, m.MaterialStatus, m.InstallerStatus, m.ScheduledInstallationAt)
		}
		w.Flush()
		return nil
	},
}

var montageShowCmd = &cobra.Command{
	Use:   "show [montage-id]",
	Short: "Show montage details and readiness alerts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		montageID := args[0]

		m, err := wire.MontageService().GetMontage(ctx, montageID)
		if err != nil {
			return fmt.Errorf("montage not found: %w", err)
		}

		fmt.Printf("Montage: %s\n", m.ID)
		fmt.Printf("Customer: %s\n", m.CustomerName)
		if m.Address != "" {
			fmt.Printf("Address: %s\n", m.Address)
		}
		fmt.Printf("Stage: %s (%s)\n", m.StatusLabel, m.Status)
		fmt.Printf("Material: %s\n", m.MaterialStatus)
		fmt.Printf("Installer readiness: %s\n", m.InstallerStatus)
		if m.InstallerID != "" {
			fmt.Printf("Installer: %s\n", m.InstallerID)
		}
		if m.MeasurerID != "" {
			fmt.Printf("Measurer: %s\n", m.MeasurerID)
		}
		if m.ScheduledInstallationAt != "" {
			fmt.Printf("Installation: %s", m.ScheduledInstallationAt)
			if m.ScheduledInstallationEndAt != "" {
				fmt.Printf(" → %s", m.ScheduledInstallationEndAt)
			}
			fmt.Println()
		}
		if m.ScheduledSkirtingInstallationAt != "" {
			fmt.Printf("Skirting installation: %s\n", m.ScheduledSkirtingInstallationAt)
		}
		fmt.Printf("Created: %s\n", m.CreatedAt)
		if m.CompletedAt != "" {
			fmt.Printf("Completed: %s\n", m.CompletedAt)
		}

		alerts, err := wire.MontageService().GetAlerts(ctx, montageID)
		if err != nil {
			return fmt.Errorf("failed to evaluate alerts: %w", err)
		}
		printAlert("Material", alerts.Material)
		printAlert("Installer", alerts.Installer)
		return nil
	},
}

var montageAdvanceCmd = &cobra.Command{
	Use:   "advance [montage-id] [stage]",
	Short: "Move a montage to a stage",
	Long: `Move a montage to the given stage.

Forward moves are gated: every checklist item tied to a stage between the
current one and the target must be complete. Backward moves always succeed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		resp, err := wire.MontageService().AdvanceStage(ctx, primary.AdvanceStageRequest{
			MontageID:   args[0],
			TargetStage: args[1],
		})
		if err != nil {
			return err
		}

		if !resp.Advanced {
			fmt.Println(color.New(color.FgRed).Sprintf("✗ Blocked at stage %q", resp.BlockingStage))
			fmt.Println("  Incomplete checklist items:")
			for _, label := range resp.MissingItems {
				fmt.Printf("    - %s\n", label)
			}
			return nil
		}

		if resp.Regressed {
			fmt.Printf("✓ Montage %s moved back to %s\n", resp.Montage.ID, resp.Montage.StatusLabel)
		} else {
			fmt.Printf("✓ Montage %s advanced to %s\n", resp.Montage.ID, resp.Montage.StatusLabel)
		}
		return nil
	},
}

var montageScheduleCmd = &cobra.Command{
	Use:   "schedule [montage-id]",
	Short: "Set the installation window and skirting date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		startAt, _ := cmd.Flags().GetString("start")
		endAt, _ := cmd.Flags().GetString("end")
		skirtingAt, _ := cmd.Flags().GetString("skirting")

		if startAt == "" && skirtingAt == "" {
			return fmt.Errorf("must specify --start and/or --skirting")
		}

		err := wire.MontageService().ScheduleInstallation(ctx, primary.ScheduleRequest{
			MontageID:  args[0],
			StartAt:    startAt,
			EndAt:      endAt,
			SkirtingAt: skirtingAt,
		})
		if err != nil {
			return fmt.Errorf("failed to schedule: %w", err)
		}

		fmt.Printf("✓ Montage %s scheduled\n", args[0])
		return nil
	},
}

var montageMaterialCmd = &cobra.Command{
	Use:   "material [montage-id] [none|ordered|in_stock|delivered]",
	Short: "Set material readiness",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.MontageService().SetMaterialStatus(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Montage %s material status set to %s\n", args[0], args[1])
		return nil
	},
}

var montageInstallerCmd = &cobra.Command{
	Use:   "installer [montage-id] [none|informed|confirmed]",
	Short: "Set installer readiness",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.MontageService().SetInstallerStatus(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Montage %s installer status set to %s\n", args[0], args[1])
		return nil
	},
}

var montageAssignCmd = &cobra.Command{
	Use:   "assign [montage-id]",
	Short: "Assign an installer and/or measurer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		installerID, _ := cmd.Flags().GetString("installer")
		measurerID, _ := cmd.Flags().GetString("measurer")

		if installerID == "" && measurerID == "" {
			return fmt.Errorf("must specify --installer and/or --measurer")
		}

		if installerID != "" {
			if err := wire.MontageService().AssignInstaller(ctx, args[0], installerID); err != nil {
				return err
			}
			fmt.Printf("✓ Installer %s assigned to %s\n", installerID, args[0])
		}
		if measurerID != "" {
			if err := wire.MontageService().AssignMeasurer(ctx, args[0], measurerID); err != nil {
				return err
			}
			fmt.Printf("✓ Measurer %s assigned to %s\n", measurerID, args[0])
		}
		return nil
	},
}

var montageProcessCmd = &cobra.Command{
	Use:   "process [montage-id]",
	Short: "Show the montage timeline with checkpoints",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := wire.MontageService().GetProcessState(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Montage %s: %d%%\n\n", state.MontageID, state.Progress)
		for i, step := range state.Steps {
			icon := stepIcon(step.Status)
			fmt.Printf("%s %s", icon, step.Label)
			if step.ScheduledDate != "" {
				fmt.Printf(" (%s)", step.ScheduledDate)
			}
			if step.CompletedDate != "" {
				fmt.Printf(" (%s)", step.CompletedDate)
			}
			if i == state.CurrentStepIndex {
				fmt.Print("  ← current")
			}
			fmt.Println()
			for _, c := range step.Checkpoints {
				fmt.Printf("    %s %s\n", checkpointIcon(c.IsMet), c.Label)
			}
		}
		if len(state.CustomCheckpoints) > 0 {
			fmt.Printf("\n%s:\n", "Inne / Niestandardowe")
			for _, c := range state.CustomCheckpoints {
				fmt.Printf("    %s %s\n", checkpointIcon(c.IsMet), c.Label)
			}
		}
		return nil
	},
}

var montageDeleteCmd = &cobra.Command{
	Use:   "delete [montage-id]",
	Short: "Delete a montage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.MontageService().DeleteMontage(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Montage %s deleted\n", args[0])
		return nil
	},
}

func stepIcon(status string) string {
	switch status {
	case "completed":
		return color.New(color.FgGreen).Sprint("●")
	case "current":
		return color.New(color.FgYellow).Sprint("◐")
	default:
		return "○"
	}
}

func checkpointIcon(met bool) string {
	if met {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return "✗"
}

func printAlert(kind string, a *primary.Alert) {
	if a == nil {
		return
	}
	badge := alertBadge(a.Level)
	fmt.Printf("%s %s: %s\n", badge, kind, a.Message)
}

func alertBadge(level string) string {
	switch level {
	case "critical":
		return color.New(color.FgRed, color.Bold).Sprint("[CRITICAL]")
	case "error":
		return color.New(color.FgRed).Sprint("[ERROR]")
	default:
		return color.New(color.FgYellow).Sprint("[WARNING]")
	}
}

func init() {
	montageCreateCmd.Flags().StringP("address", "a", "", "Installation address")
	montageCreateCmd.Flags().String("installer", "", "Installer ID")
	montageCreateCmd.Flags().String("measurer", "", "Measurer ID")

	montageListCmd.Flags().StringP("status", "s", "", "Filter by stage value")
	montageListCmd.Flags().String("installer", "", "Filter by installer")
	montageListCmd.Flags().String("measurer", "", "Filter by measurer")

	montageScheduleCmd.Flags().String("start", "", "Installation start (RFC3339)")
	montageScheduleCmd.Flags().String("end", "", "Installation window end (RFC3339)")
	montageScheduleCmd.Flags().String("skirting", "", "Skirting installation date (RFC3339)")

	montageAssignCmd.Flags().String("installer", "", "Installer ID")
	montageAssignCmd.Flags().String("measurer", "", "Measurer ID")

	montageCmd.AddCommand(montageCreateCmd)
	montageCmd.AddCommand(montageListCmd)
	montageCmd.AddCommand(montageShowCmd)
	montageCmd.AddCommand(montageAdvanceCmd)
	montageCmd.AddCommand(montageScheduleCmd)
	montageCmd.AddCommand(montageMaterialCmd)
	montageCmd.AddCommand(montageInstallerCmd)
	montageCmd.AddCommand(montageAssignCmd)
	montageCmd.AddCommand(montageProcessCmd)
	montageCmd.AddCommand(montageDeleteCmd)
}

// MontageCmd returns the montage command
func MontageCmd() *cobra.Command {
	return montageCmd
}
