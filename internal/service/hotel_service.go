package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/anvivatsa1/DreamStay/internal/repository"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomAlreadyBooked   = errors.New("room already booked")
	ErrRoomNotOccupied     = errors.New("room not occupied")
	ErrRoomNotBooked       = errors.New("room not booked yet")
	ErrInvalidStayDuration = errors.New("invalid stay duration: check-out must be after check-in")
	ErrInvalidGuest        = errors.New("guest name and mobile must not contain line breaks")
	ErrPersistence         = errors.New("persistence failure")
)

const (
	EventBookingCreated = "booking.created"
	EventRoomCheckedOut = "room.checked_out"
)

type HotelService interface {
	LoadAll(ctx context.Context) error
	SearchRooms(category models.Category) []models.Room
	Rooms() []models.Room
	BookRoom(ctx context.Context, in BookRoomInput) (*models.Booking, error)
	CheckIn(roomID int) error
	CheckOut(ctx context.Context, roomID int) error
	AllBookings() []models.Booking
	TotalRooms() int
	TotalBookings() int
}

// EventPublisher announces state changes after they are persisted.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BookRoomInput struct {
	RoomID    int
	GuestName string
	Mobile    string
	CheckIn   time.Time
	CheckOut  time.Time
}

// RoomCheckedOut is the payload published on checkout.
type RoomCheckedOut struct {
	RoomID int       `json:"roomId"`
	At     time.Time `json:"at"`
}

// BookingCreated is the payload published after a booking is persisted.
type BookingCreated struct {
	RoomID      int    `json:"roomId"`
	GuestName   string `json:"guestName"`
	Mobile      string `json:"mobile"`
	CheckIn     string `json:"checkIn"`
	CheckOut    string `json:"checkOut"`
	TotalAmount string `json:"totalAmount"`
}

type hotelService struct {
	mu        sync.RWMutex
	rooms     []models.Room
	index     map[int]int // room id -> position in rooms
	bookings  []models.Booking
	store     repository.Store
	publisher EventPublisher
	inventory []models.InventoryGroup
	log       *slog.Logger
	now       func() time.Time
}

// NewHotelService builds an engine with empty state; call LoadAll before serving.
// publisher may be nil, in which case nothing is announced.
func NewHotelService(store repository.Store, publisher EventPublisher, inventory []models.InventoryGroup, log *slog.Logger) HotelService {
	if len(inventory) == 0 {
		inventory = models.DefaultInventory()
	}
	return &hotelService{
		index:     make(map[int]int),
		store:     store,
		publisher: publisher,
		inventory: inventory,
		log:       log,
		now:       time.Now,
	}
}

// LoadAll replaces the in-memory state with what the store holds, seeding the
// default inventory when the store has no rooms. Malformed records are skipped
// and reported; the records that did parse still become the current state.
func (s *hotelService) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, roomsErr := s.store.LoadRooms(ctx)
	if roomsErr != nil && !errors.Is(roomsErr, repository.ErrMalformedRecord) {
		return fmt.Errorf("%w: %w", ErrPersistence, roomsErr)
	}
	bookings, bookingsErr := s.store.LoadBookings(ctx)
	if bookingsErr != nil && !errors.Is(bookingsErr, repository.ErrMalformedRecord) {
		return fmt.Errorf("%w: %w", ErrPersistence, bookingsErr)
	}

	s.setRooms(rooms)
	s.bookings = bookings

	if loadErr := errors.Join(roomsErr, bookingsErr); loadErr != nil {
		s.log.Warn("hotel.load.malformed", "rooms", len(s.rooms), "bookings", len(s.bookings), "error", loadErr)
		return fmt.Errorf("%w: %w", ErrPersistence, loadErr)
	}

	if len(s.rooms) == 0 {
		s.setRooms(seedRooms(s.inventory))
		if err := s.persist(ctx); err != nil {
			return err
		}
		s.log.Info("hotel.seeded", "rooms", len(s.rooms))
	}

	s.log.Info("hotel.loaded", "rooms", len(s.rooms), "bookings", len(s.bookings))
	return nil
}

func (s *hotelService) SearchRooms(category models.Category) []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if r.Matches(category) {
			available = append(available, r)
		}
	}
	return available
}

func (s *hotelService) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Room(nil), s.rooms...)
}

func (s *hotelService) BookRoom(ctx context.Context, in BookRoomInput) (*models.Booking, error) {
	booking, err := s.book(ctx, in)
	if err != nil {
		return nil, err
	}

	s.log.Info("hotel.booked", "room_id", booking.RoomID, "nights", booking.Nights(), "total", booking.TotalAmount.StringFixed(2))
	s.publish(ctx, EventBookingCreated, BookingCreated{
		RoomID:      booking.RoomID,
		GuestName:   booking.Guest.Name,
		Mobile:      booking.Guest.Mobile,
		CheckIn:     booking.CheckIn.Format(models.DateLayout),
		CheckOut:    booking.CheckOut.Format(models.DateLayout),
		TotalAmount: booking.TotalAmount.StringFixed(2),
	})

	return &booking, nil
}

func (s *hotelService) book(ctx context.Context, in BookRoomInput) (models.Booking, error) {
	if strings.ContainsAny(in.GuestName, "\r\n") || strings.ContainsAny(in.Mobile, "\r\n") {
		return models.Booking{}, ErrInvalidGuest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[in.RoomID]
	if !ok {
		return models.Booking{}, fmt.Errorf("%w: %d", ErrRoomNotFound, in.RoomID)
	}
	room := &s.rooms[pos]
	if room.IsBooked {
		return models.Booking{}, fmt.Errorf("%w: %d", ErrRoomAlreadyBooked, in.RoomID)
	}

	checkIn, checkOut := models.Day(in.CheckIn), models.Day(in.CheckOut)
	nights := models.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return models.Booking{}, ErrInvalidStayDuration
	}

	total, err := room.CalculatePrice(nights)
	if err != nil {
		return models.Booking{}, fmt.Errorf("price room %d: %w", room.ID, err)
	}

	booking := models.Booking{
		RoomID:      room.ID,
		Guest:       models.Guest{Name: in.GuestName, Mobile: in.Mobile},
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: total,
	}

	room.IsBooked = true
	s.bookings = append(s.bookings, booking)

	if err := s.persist(ctx); err != nil {
		room.IsBooked = false
		s.bookings = s.bookings[:len(s.bookings)-1]
		s.compensate(ctx)
		return models.Booking{}, err
	}
	return booking, nil
}

// CheckIn only verifies that the room is booked; it changes no state.
func (s *hotelService) CheckIn(roomID int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[roomID]
	if !ok || !s.rooms[pos].IsBooked {
		return fmt.Errorf("%w: %d", ErrRoomNotBooked, roomID)
	}

	s.log.Info("hotel.checked_in", "room_id", roomID)
	return nil
}

func (s *hotelService) CheckOut(ctx context.Context, roomID int) error {
	if err := s.checkOut(ctx, roomID); err != nil {
		return err
	}

	s.log.Info("hotel.checked_out", "room_id", roomID)
	s.publish(ctx, EventRoomCheckedOut, RoomCheckedOut{RoomID: roomID, At: s.now().UTC()})
	return nil
}

func (s *hotelService) checkOut(ctx context.Context, roomID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[roomID]
	if !ok || !s.rooms[pos].IsBooked {
		return fmt.Errorf("%w: %d", ErrRoomNotOccupied, roomID)
	}

	s.rooms[pos].IsBooked = false
	if err := s.persist(ctx); err != nil {
		s.rooms[pos].IsBooked = true
		s.compensate(ctx)
		return err
	}
	return nil
}

func (s *hotelService) AllBookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Booking(nil), s.bookings...)
}

func (s *hotelService) TotalRooms() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *hotelService) TotalBookings() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// persist writes rooms then bookings. A crash between the two file writes
// leaves rooms ahead of bookings; stores implementing AtomicSaver avoid that.
// Caller holds the write lock.
func (s *hotelService) persist(ctx context.Context) error {
	if saver, ok := s.store.(repository.AtomicSaver); ok {
		if err := saver.SaveAll(ctx, s.rooms, s.bookings); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return nil
	}

	if err := s.store.SaveRooms(ctx, s.rooms); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := s.store.SaveBookings(ctx, s.bookings); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// compensate rewrites the rolled-back rooms after a failed persist, in case
// the rooms write went through before the bookings write failed.
// Caller holds the write lock.
func (s *hotelService) compensate(ctx context.Context) {
	if _, ok := s.store.(repository.AtomicSaver); ok {
		return
	}
	if err := s.store.SaveRooms(ctx, s.rooms); err != nil {
		s.log.Error("hotel.persist.stale", "error", err)
	}
}

func (s *hotelService) publish(ctx context.Context, routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.log.Warn("hotel.publish.failed", "routing_key", routingKey, "error", err)
	}
}

// setRooms swaps in rooms and rebuilds the id index. Caller holds the write lock.
func (s *hotelService) setRooms(rooms []models.Room) {
	s.rooms = rooms
	s.index = make(map[int]int, len(rooms))
	for i, r := range rooms {
		s.index[r.ID] = i
	}
}

func seedRooms(inventory []models.InventoryGroup) []models.Room {
	var rooms []models.Room
	id := 1
	for _, g := range inventory {
		for i := 0; i < g.Count; i++ {
			rooms = append(rooms, models.NewRoom(id, g.Category, g.Rate))
			id++
		}
	}
	return rooms
}
