package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date used on the wire and on disk.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

type Guest struct {
	Name   string
	Mobile string
}

func (g Guest) String() string {
	return fmt.Sprintf("%s (%s)", g.Name, g.Mobile)
}

type Booking struct {
	RoomID      int
	Guest       Guest
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount decimal.Decimal
}

func (b Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

func (b Booking) String() string {
	return fmt.Sprintf("Room %d | %s | %s to %s | %s",
		b.RoomID, b.Guest, b.CheckIn.Format(DateLayout), b.CheckOut.Format(DateLayout), b.TotalAmount.StringFixed(2))
}

// Day drops the clock and location, keeping the calendar date as seen in t's own zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// NightsBetween counts calendar days from in to out; negative when out is earlier.
func NightsBetween(in, out time.Time) int {
	return int((Day(out).Unix() - Day(in).Unix()) / secondsPerDay)
}
