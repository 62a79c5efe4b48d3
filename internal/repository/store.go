package repository

import (
	"context"

	"github.com/anvivatsa1/DreamStay/internal/models"
)

// Store loads and saves whole collections. Every save fully replaces what was persisted before.
// Loads return an empty collection, not an error, when nothing has been persisted yet.
type Store interface {
	LoadRooms(ctx context.Context) ([]models.Room, error)
	SaveRooms(ctx context.Context, rooms []models.Room) error
	LoadBookings(ctx context.Context) ([]models.Booking, error)
	SaveBookings(ctx context.Context, bookings []models.Booking) error
}

// AtomicSaver is implemented by stores that can replace both collections in one step.
type AtomicSaver interface {
	SaveAll(ctx context.Context, rooms []models.Room, bookings []models.Booking) error
}
