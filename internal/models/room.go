package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCategory = errors.New("unknown room category")
	ErrInvalidNights   = errors.New("nights must be positive")
)

type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategoryDeluxe   Category = "DELUXE"

	// CategoryAny only appears as a search filter, never on a room.
	CategoryAny Category = "ANY"
)

// DeluxeServiceCharge is added once per DELUXE stay, not per night.
var DeluxeServiceCharge = decimal.NewFromInt(1000)

// PriceFormula turns a nightly rate and a positive night count into a stay total.
type PriceFormula func(rate decimal.Decimal, nights int) decimal.Decimal

var formulas = map[Category]PriceFormula{
	CategoryStandard: perNight,
	CategoryDeluxe:   withServiceCharge(DeluxeServiceCharge),
}

func perNight(rate decimal.Decimal, nights int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(nights)))
}

func withServiceCharge(charge decimal.Decimal) PriceFormula {
	return func(rate decimal.Decimal, nights int) decimal.Decimal {
		return perNight(rate, nights).Add(charge)
	}
}

// ParseCategory accepts only categories that carry a price formula.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := formulas[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// PriceFor applies the category's formula.
func PriceFor(c Category, rate decimal.Decimal, nights int) (decimal.Decimal, error) {
	if nights <= 0 {
		return decimal.Zero, fmt.Errorf("%w: got %d", ErrInvalidNights, nights)
	}
	f, ok := formulas[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return f(rate, nights), nil
}

type Room struct {
	ID       int
	Category Category
	Rate     decimal.Decimal
	IsBooked bool
}

func NewRoom(id int, c Category, rate decimal.Decimal) Room {
	return Room{ID: id, Category: c, Rate: rate}
}

func (r Room) CalculatePrice(nights int) (decimal.Decimal, error) {
	return PriceFor(r.Category, r.Rate, nights)
}

// Matches reports whether the room is free and passes the category filter.
func (r Room) Matches(filter Category) bool {
	return !r.IsBooked && (filter == CategoryAny || r.Category == filter)
}

func (r Room) String() string {
	status := "Available"
	if r.IsBooked {
		status = "Booked"
	}
	return fmt.Sprintf("[%d] %s - %s/night (%s)", r.ID, r.Category, r.Rate.StringFixed(2), status)
}
