package cli

import (
	"fmt"
	"strconv"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/anvivatsa1/DreamStay/internal/service"
	"github.com/spf13/cobra"
)

func bookCmd(opts *globalOptions) *cobra.Command {
	var (
		roomID        int
		name, mobile  string
		checkInInput  string
		checkOutInput string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a room",
		RunE: func(cmd *cobra.Command, _ []string) error {
			checkIn, err := models.ParseDay(checkInInput)
			if err != nil {
				return err
			}
			checkOut, err := models.ParseDay(checkOutInput)
			if err != nil {
				return err
			}

			return withApp(cmd, opts, func(a *app) error {
				booking, err := a.svc.BookRoom(cmd.Context(), service.BookRoomInput{
					RoomID:    roomID,
					GuestName: name,
					Mobile:    mobile,
					CheckIn:   checkIn,
					CheckOut:  checkOut,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Booked: %s\n", booking)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&roomID, "room", 0, "room id")
	cmd.Flags().StringVar(&name, "name", "", "guest name")
	cmd.Flags().StringVar(&mobile, "mobile", "", "guest mobile number")
	cmd.Flags().StringVar(&checkInInput, "in", "", "check-in date ("+models.DateLayout+")")
	cmd.Flags().StringVar(&checkOutInput, "out", "", "check-out date ("+models.DateLayout+")")
	for _, f := range []string{"room", "name", "mobile", "in", "out"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func checkInCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin ROOM_ID",
		Short: "Confirm a booked room's guest has arrived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseRoomID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.svc.CheckIn(roomID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Checked in to room %d\n", roomID)
				return nil
			})
		},
	}
}

func checkOutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout ROOM_ID",
		Short: "Release a booked room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseRoomID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.svc.CheckOut(cmd.Context(), roomID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Checked out successfully for room %d\n", roomID)
				return nil
			})
		},
	}
}

func parseRoomID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid room id %q", s)
	}
	return id, nil
}
