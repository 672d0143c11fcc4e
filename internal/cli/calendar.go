package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/montage/internal/ports/primary"
	"github.com/example/montage/internal/wire"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Unified scheduling view over orders and montages",
}

var calendarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events",
	Long: `List calendar events.

Without a role flag the admin view is shown: all montages plus fulfillment
orders. With --installer or --measurer only that person's montages appear.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		installerID, _ := cmd.Flags().GetString("installer")
		measurerID, _ := cmd.Flags().GetString("measurer")

		role := primary.Role{
			Admin:       installerID == "" && measurerID == "",
			InstallerID: installerID,
			MeasurerID:  measurerID,
		}

		list, err := wire.CalendarService().ListEvents(context.Background(), role)
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(list.Scheduled) == 0 && len(list.Unscheduled) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if len(list.Scheduled) > 0 {
			fmt.Fprintln(w, "DATE\tID\tTYPE\tTITLE\tSTATUS")
			fmt.Fprintln(w, "----\t--\t----\t-----\t------")
			for _, e := range list.Scheduled {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Date, e.ID, e.Type, e.Title, e.Status)
			}
		}
		if len(list.Unscheduled) > 0 {
			fmt.Fprintln(w, "\nUnscheduled:")
			for _, e := range list.Unscheduled {
				fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\n", e.ID, e.Type, e.Title, e.Status)
			}
		}
		w.Flush()
		return nil
	},
}

var calendarMoveCmd = &cobra.Command{
	Use:   "move [event-id] [date]",
	Short: "Move an event to a new date",
	Long: `Move an event to a new date (RFC3339).

Order events write back to the expected ship date. Montage events write the
installation date; ids ending in -skirting write the skirting date instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventType, _ := cmd.Flags().GetString("type")

		err := wire.CalendarService().UpdateEventDate(context.Background(), primary.UpdateEventDateRequest{
			EventID: args[0],
			Type:    eventType,
			NewDate: args[1],
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Event %s moved to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	calendarListCmd.Flags().String("installer", "", "Show the calendar of one installer")
	calendarListCmd.Flags().String("measurer", "", "Show the calendar of one measurer")

	calendarMoveCmd.Flags().StringP("type", "t", primary.EventTypeMontage, "Event type: montage or order")

	calendarCmd.AddCommand(calendarListCmd)
	calendarCmd.AddCommand(calendarMoveCmd)
}

// CalendarCmd returns the calendar command
func CalendarCmd() *cobra.Command {
	return calendarCmd
}
