package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidRate = errors.New("invalid nightly rate")

// InventoryGroup describes count rooms of one category at one rate, used for first-run seeding.
type InventoryGroup struct {
	Category Category
	Count    int
	Rate     decimal.Decimal
}

// DefaultInventory is three STANDARD rooms at 2000 and two DELUXE rooms at 3500.
func DefaultInventory() []InventoryGroup {
	return []InventoryGroup{
		{Category: CategoryStandard, Count: 3, Rate: decimal.NewFromInt(2000)},
		{Category: CategoryDeluxe, Count: 2, Rate: decimal.NewFromInt(3500)},
	}
}

// ParseRate accepts positive amounts with at most two decimal places, the
// precision rates are stored with.
func ParseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be positive, got %s", ErrInvalidRate, rate)
	}
	if !rate.Equal(rate.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: more than two decimal places in %s", ErrInvalidRate, rate)
	}
	return rate, nil
}
