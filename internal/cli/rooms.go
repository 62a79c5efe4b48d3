package cli

import (
	"fmt"
	"strings"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/spf13/cobra"
)

func roomsCmd(opts *globalOptions) *cobra.Command {
	var (
		roomType string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List available rooms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(a *app) error {
				out := cmd.OutOrStdout()

				rooms := a.svc.SearchRooms(models.Category(strings.ToUpper(roomType)))
				if all {
					rooms = a.svc.Rooms()
				}
				if len(rooms) == 0 {
					fmt.Fprintln(out, "(no rooms available)")
					return nil
				}
				for _, r := range rooms {
					fmt.Fprintln(out, r)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&roomType, "type", "t", string(models.CategoryAny), "STANDARD, DELUXE or ANY")
	cmd.Flags().BoolVar(&all, "all", false, "list every room, booked or not")
	return cmd
}

func bookingsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List the booking history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(a *app) error {
				out := cmd.OutOrStdout()

				bookings := a.svc.AllBookings()
				if len(bookings) == 0 {
					fmt.Fprintln(out, "(no bookings)")
					return nil
				}
				for _, b := range bookings {
					fmt.Fprintln(out, b)
				}
				return nil
			})
		},
	}
}
