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

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders and the dropshipping ledger",
	Long:  "Create, list, and move orders through their stage pipelines",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create [customer-name]",
	Short: "Create a new order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		workflow, _ := cmd.Flags().GetString("workflow")
		mode, _ := cmd.Flags().GetString("mode")

		resp, err := wire.OrderService().CreateOrder(context.Background(), primary.CreateOrderRequest{
			CustomerName:  strings.Join(args, " "),
			Workflow:      workflow,
			ExecutionMode: mode,
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		fmt.Printf("✓ Created order %s: %s\n", resp.OrderID, resp.Order.CustomerName)
		fmt.Printf("  Workflow: %s\n", resp.Order.Workflow)
		if resp.Order.ExecutionMode != "" {
			fmt.Printf("  Mode: %s\n", resp.Order.ExecutionMode)
		}
		fmt.Printf("  Stage: %s\n", resp.Order.StageLabel)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		workflow, _ := cmd.Flags().GetString("workflow")
		stage, _ := cmd.Flags().GetString("stage")
		attention, _ := cmd.Flags().GetBool("attention")

		orders, err := wire.OrderService().ListOrders(context.Background(), primary.OrderFilters{
			Workflow:       workflow,
			Stage:          stage,
			AdminAttention: attention,
		})
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}

		if len(orders) == 0 {
			fmt.Println("No orders found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tWORKFLOW\tSTAGE\tPROGRESS\tFLAGS")
		fmt.Fprintln(w, "--\t--------\t--------\t-----\t--------\t-----")
		for _, o := range orders {
			var flags []string
			if o.RequiresAdminAttention {
				flags = append(flags, color.New(color.FgRed).Sprint("attention"))
			}
			if o.HasQuote {
				flags = append(flags, "quote")
			}
			if o.HasInvoice {
				flags = append(flags, "invoice")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
				o.ID, o.CustomerName, o.Workflow, o.StageLabel, o.Progress, strings.Join(flags, ","))
		}
		w.Flush()
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show [order-id]",
	Short: "Show order details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := wire.OrderService().GetOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("order not found: %w", err)
		}

		fmt.Printf("Order: %s\n", o.ID)
		fmt.Printf("Customer: %s\n", o.CustomerName)
		fmt.Printf("Workflow: %s\n", o.Workflow)
		if o.ExecutionMode != "" {
			fmt.Printf("Mode: %s\n", o.ExecutionMode)
		}
		fmt.Printf("Stage: %s (%s), %d%%\n", o.StageLabel, o.Stage, o.Progress)
		if o.RequiresAdminAttention {
			fmt.Printf("%s requires admin attention\n", color.New(color.FgRed).Sprint("!"))
		}
		fmt.Printf("Quote issued: %v\n", o.HasQuote)
		fmt.Printf("Invoice issued: %v\n", o.HasInvoice)
		if o.ExpectedShipDate != "" {
			fmt.Printf("Expected ship date: %s\n", o.ExpectedShipDate)
		}
		fmt.Printf("Created: %s\n", o.CreatedAt)
		if o.StageNotes != "" {
			fmt.Println("\nStage notes:")
			for _, line := range strings.Split(o.StageNotes, "\n") {
				fmt.Printf("  %s\n", line)
			}
		}
		return nil
	},
}

var orderStageCmd = &cobra.Command{
	Use:   "stage [order-id] [stage]",
	Short: "Move an order to a stage",
	Long: `Move an order to a stage of its pipeline.

The stage must belong to the order's workflow and execution mode. Backward
moves are allowed and recorded in the stage notes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")

		order, err := wire.OrderService().SetStage(context.Background(), primary.SetStageRequest{
			OrderID: args[0],
			Stage:   args[1],
			Note:    note,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Order %s is now at %s\n", order.ID, order.StageLabel)
		return nil
	},
}

var orderStagesCmd = &cobra.Command{
	Use:   "stages [order-id]",
	Short: "List the stages visible for an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stages, err := wire.OrderService().VisibleStages(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, s := range stages {
			fmt.Println(s)
		}
		return nil
	},
}

var orderAttentionCmd = &cobra.Command{
	Use:   "attention [order-id] [on|off]",
	Short: "Flag or unflag an order for admin attention",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var v bool
		switch args[1] {
		case "on":
			v = true
		case "off":
			v = false
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}

		if err := wire.OrderService().SetAdminAttention(context.Background(), args[0], v); err != nil {
			return err
		}
		if v {
			fmt.Printf("✓ Order %s flagged for admin attention\n", args[0])
		} else {
			fmt.Printf("✓ Order %s attention flag cleared\n", args[0])
		}
		return nil
	},
}

var orderDocsCmd = &cobra.Command{
	Use:   "docs [order-id]",
	Short: "Set document flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.SetDocumentFlagsRequest{OrderID: args[0]}
		if cmd.Flags().Changed("quote") {
			v, _ := cmd.Flags().GetBool("quote")
			req.Quote = &v
		}
		if cmd.Flags().Changed("invoice") {
			v, _ := cmd.Flags().GetBool("invoice")
			req.Invoice = &v
		}
		if req.Quote == nil && req.Invoice == nil {
			return fmt.Errorf("must specify --quote and/or --invoice")
		}

		if err := wire.OrderService().SetDocumentFlags(context.Background(), req); err != nil {
			return err
		}
		fmt.Printf("✓ Order %s document flags updated\n", args[0])
		return nil
	},
}

var orderShipDateCmd = &cobra.Command{
	Use:   "ship-date [order-id] [date]",
	Short: "Set the expected ship date (empty date clears it)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := ""
		if len(args) == 2 {
			date = args[1]
		}

		if err := wire.OrderService().SetExpectedShipDate(context.Background(), args[0], date); err != nil {
			return err
		}
		if date == "" {
			fmt.Printf("✓ Order %s ship date cleared\n", args[0])
		} else {
			fmt.Printf("✓ Order %s expected to ship %s\n", args[0], date)
		}
		return nil
	},
}

func init() {
	orderCreateCmd.Flags().StringP("workflow", "w", "", "Workflow: order (default) or dropshipping")
	orderCreateCmd.Flags().StringP("mode", "m", "", "Execution mode: DELIVERY_ONLY (default) or INSTALLATION_ONLY")

	orderListCmd.Flags().StringP("workflow", "w", "", "Filter by workflow")
	orderListCmd.Flags().StringP("stage", "s", "", "Filter by stage value")
	orderListCmd.Flags().BoolP("attention", "a", false, "Show only orders flagged for admin attention")

	orderStageCmd.Flags().StringP("note", "n", "", "Operator note recorded with the change")

	orderDocsCmd.Flags().Bool("quote", false, "Quote issued")
	orderDocsCmd.Flags().Bool("invoice", false, "Invoice issued")

	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderStageCmd)
	orderCmd.AddCommand(orderStagesCmd)
	orderCmd.AddCommand(orderAttentionCmd)
	orderCmd.AddCommand(orderDocsCmd)
	orderCmd.AddCommand(orderShipDateCmd)
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	return orderCmd
}
