package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/wire"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manage montage checklists",
	Long:  "Initialize, list, and edit the checklist items of a montage",
}

var checklistInitCmd = &cobra.Command{
	Use:   "init [montage-id]",
	Short: "Create checklist items from the template catalog",
	Long: `Create checklist items from the template catalog.

Idempotent: templates already instantiated for the montage are skipped, so
re-running after a catalog update only adds the new templates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := wire.ChecklistService().InitializeChecklist(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to initialize checklist: %w", err)
		}

		if resp.Added == 0 {
			fmt.Printf("Checklist for %s already initialized (%d items)\n", resp.MontageID, resp.Total)
		} else {
			fmt.Printf("✓ Added %d checklist items to %s (%d total)\n", resp.Added, resp.MontageID, resp.Total)
		}
		return nil
	},
}

var checklistListCmd = &cobra.Command{
	Use:   "list [montage-id]",
	Short: "List checklist items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := wire.ChecklistService().ListItems(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list checklist items: %w", err)
		}

		if len(items) == 0 {
			fmt.Println("No checklist items found.")
			fmt.Println()
			fmt.Printf("Initialize the checklist:\n  montage checklist init %s\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDONE\tITEM\tSTAGE\tATTACHMENT")
		fmt.Fprintln(w, "--\t----\t----\t-----\t----------")
		for _, item := range items {
			done := " "
			if item.Completed {
				done = "✓"
			}
			stage := item.Stage
			if stage == "" {
				stage = "-"
			}
			locked := ""
			if item.Locked {
				locked = " [locked]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\t%s\n", item.ID, done, item.Label, locked, stage, item.Attachment)
		}
		w.Flush()
		return nil
	},
}

var checklistAddCmd = &cobra.Command{
	Use:   "add [montage-id] [label]",
	Short: "Add a custom checklist item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := wire.ChecklistService().AddCustomItem(context.Background(), primary.AddCustomItemRequest{
			MontageID: args[0],
			Label:     strings.Join(args[1:], " "),
		})
		if err != nil {
			return fmt.Errorf("failed to add checklist item: %w", err)
		}

		fmt.Printf("✓ Added %s: %s\n", item.ID, item.Label)
		return nil
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle [item-id]",
	Short: "Toggle an item's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := wire.ChecklistService().ToggleItem(context.Background(), args[0])
		if err != nil {
			return err
		}

		if item.Completed {
			fmt.Printf("✓ %s completed: %s\n", item.ID, item.Label)
		} else {
			fmt.Printf("✓ %s reopened: %s\n", item.ID, item.Label)
		}
		return nil
	},
}

var checklistAttachCmd = &cobra.Command{
	Use:   "attach [item-id] [file]",
	Short: "Attach a file to an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := wire.ChecklistService().AttachFile(context.Background(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("✓ Attached to %s (reference %s)\n", args[0], ref)
		return nil
	},
}

var checklistRenameCmd = &cobra.Command{
	Use:   "rename [item-id] [label]",
	Short: "Rename an unlocked item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := strings.Join(args[1:], " ")
		if err := wire.ChecklistService().RenameItem(context.Background(), args[0], label); err != nil {
			return err
		}

		fmt.Printf("✓ %s renamed to: %s\n", args[0], label)
		return nil
	},
}

var checklistRemoveCmd = &cobra.Command{
	Use:   "remove [item-id]",
	Short: "Remove an unlocked item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ChecklistService().RemoveItem(context.Background(), args[0]); err != nil {
			return err
		}

		fmt.Printf("✓ %s removed\n", args[0])
		return nil
	},
}

func init() {
	checklistCmd.AddCommand(checklistInitCmd)
	checklistCmd.AddCommand(checklistListCmd)
	checklistCmd.AddCommand(checklistAddCmd)
	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistAttachCmd)
	checklistCmd.AddCommand(checklistRenameCmd)
	checklistCmd.AddCommand(checklistRemoveCmd)
}

// ChecklistCmd returns the checklist command
func ChecklistCmd() *cobra.Command {
	return checklistCmd
}
