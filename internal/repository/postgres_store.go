package repository

import (
	"context"
	"errors"
	"time"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomRecord is the rooms table row. Position keeps the in-memory order.
type RoomRecord struct {
	ID       int             `gorm:"primaryKey;autoIncrement:false"`
	Position int             `gorm:"not null;index"`
	Category string          `gorm:"type:varchar(20);not null"`
	Rate     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsBooked bool            `gorm:"not null;default:false"`
}

func (RoomRecord) TableName() string { return "rooms" }

// BookingRecord is the bookings table row. Seq is the position in the booking history.
type BookingRecord struct {
	Seq         int             `gorm:"primaryKey;autoIncrement:false"`
	RoomID      int             `gorm:"not null;index"`
	GuestName   string          `gorm:"not null"`
	GuestMobile string          `gorm:"not null"`
	CheckIn     time.Time       `gorm:"type:date;not null"`
	CheckOut    time.Time       `gorm:"type:date;not null"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (BookingRecord) TableName() string { return "bookings" }

type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore expects the schema from database.NewPostgresDB to be in place.
// The returned store also implements AtomicSaver.
func NewPostgresStore(db *gorm.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) LoadRooms(ctx context.Context) ([]models.Room, error) {
	var records []RoomRecord
	if err := s.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, &StoreError{Op: "load rooms", Path: "rooms", Err: err}
	}

	rooms := make([]models.Room, 0, len(records))
	var bad []error
	for i, rec := range records {
		category, err := models.ParseCategory(rec.Category)
		if err != nil {
			bad = append(bad, &RecordError{Line: i + 1, Record: []string{rec.Category}, Err: err})
			continue
		}
		rooms = append(rooms, models.Room{ID: rec.ID, Category: category, Rate: rec.Rate, IsBooked: rec.IsBooked})
	}
	if len(bad) > 0 {
		return rooms, &StoreError{Op: "load rooms", Path: "rooms", Err: errors.Join(bad...)}
	}
	return rooms, nil
}

func (s *postgresStore) SaveRooms(ctx context.Context, rooms []models.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceRooms(tx, rooms)
	})
}

func (s *postgresStore) LoadBookings(ctx context.Context) ([]models.Booking, error) {
	var records []BookingRecord
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&records).Error; err != nil {
		return nil, &StoreError{Op: "load bookings", Path: "bookings", Err: err}
	}

	bookings := make([]models.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, models.Booking{
			RoomID:      rec.RoomID,
			Guest:       models.Guest{Name: rec.GuestName, Mobile: rec.GuestMobile},
			CheckIn:     models.Day(rec.CheckIn),
			CheckOut:    models.Day(rec.CheckOut),
			TotalAmount: rec.TotalAmount,
		})
	}
	return bookings, nil
}

func (s *postgresStore) SaveBookings(ctx context.Context, bookings []models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceBookings(tx, bookings)
	})
}

// SaveAll replaces both tables in one transaction.
func (s *postgresStore) SaveAll(ctx context.Context, rooms []models.Room, bookings []models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceRooms(tx, rooms); err != nil {
			return err
		}
		return replaceBookings(tx, bookings)
	})
}

// replaceRooms upserts the given rooms by id and drops any row not among them.
func replaceRooms(tx *gorm.DB, rooms []models.Room) error {
	if len(rooms) == 0 {
		if err := tx.Where("1 = 1").Delete(&RoomRecord{}).Error; err != nil {
			return &StoreError{Op: "save rooms", Path: "rooms", Err: err}
		}
		return nil
	}

	records := make([]RoomRecord, len(rooms))
	ids := make([]int, len(rooms))
	for i, r := range rooms {
		records[i] = RoomRecord{
			ID:       r.ID,
			Position: i,
			Category: string(r.Category),
			Rate:     r.Rate,
			IsBooked: r.IsBooked,
		}
		ids[i] = r.ID
	}
	if err := tx.Where("id NOT IN ?", ids).Delete(&RoomRecord{}).Error; err != nil {
		return &StoreError{Op: "save rooms", Path: "rooms", Err: err}
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "category", "rate", "is_booked"}),
	}).Create(&records).Error
	if err != nil {
		return &StoreError{Op: "save rooms", Path: "rooms", Err: err}
	}
	return nil
}

func replaceBookings(tx *gorm.DB, bookings []models.Booking) error {
	if err := tx.Where("1 = 1").Delete(&BookingRecord{}).Error; err != nil {
		return &StoreError{Op: "save bookings", Path: "bookings", Err: err}
	}
	if len(bookings) == 0 {
		return nil
	}

	records := make([]BookingRecord, len(bookings))
	for i, b := range bookings {
		records[i] = BookingRecord{
			Seq:         i + 1,
			RoomID:      b.RoomID,
			GuestName:   b.Guest.Name,
			GuestMobile: b.Guest.Mobile,
			CheckIn:     b.CheckIn,
			CheckOut:    b.CheckOut,
			TotalAmount: b.TotalAmount,
		}
	}
	if err := tx.CreateInBatches(&records, 500).Error; err != nil {
		return &StoreError{Op: "save bookings", Path: "bookings", Err: err}
	}
	return nil
}
