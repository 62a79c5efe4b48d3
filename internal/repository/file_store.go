package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/shopspring/decimal"
)

const (
	RoomsFile    = "rooms.txt"
	BookingsFile = "bookings.txt"

	roomFields    = 4
	bookingFields = 6

	maxLineSize = 1 << 20
)

type fileStore struct {
	dir string
}

// NewFileStore keeps rooms and bookings as comma-separated text files in dir.
// Fields containing commas or quotes are quoted; older unquoted files read unchanged.
func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

func (s *fileStore) roomsPath() string    { return filepath.Join(s.dir, RoomsFile) }
func (s *fileStore) bookingsPath() string { return filepath.Join(s.dir, BookingsFile) }

func (s *fileStore) LoadRooms(_ context.Context) ([]models.Room, error) {
	path := s.roomsPath()
	seen := make(map[int]bool)

	var rooms []models.Room
	err := readRecords(path, "load rooms", func(rec []string) error {
		room, err := decodeRoom(rec)
		if err != nil {
			return err
		}
		if seen[room.ID] {
			return fmt.Errorf("duplicate room id %d", room.ID)
		}
		seen[room.ID] = true
		rooms = append(rooms, room)
		return nil
	})
	return rooms, err
}

func (s *fileStore) SaveRooms(_ context.Context, rooms []models.Room) error {
	records := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		records = append(records, encodeRoom(r))
	}
	return writeRecords(s.roomsPath(), "save rooms", records)
}

func (s *fileStore) LoadBookings(_ context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := readRecords(s.bookingsPath(), "load bookings", func(rec []string) error {
		b, err := decodeBooking(rec)
		if err != nil {
			return err
		}
		bookings = append(bookings, b)
		return nil
	})
	return bookings, err
}

func (s *fileStore) SaveBookings(_ context.Context, bookings []models.Booking) error {
	records := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, encodeBooking(b))
	}
	return writeRecords(s.bookingsPath(), "save bookings", records)
}

// readRecords feeds every line to decode as one record. A missing file is an
// empty store. Each line is parsed on its own, so an unbalanced quote costs
// only its line; lines that fail are collected and reported together after
// the rest of the file has been read.
func readRecords(path, op string, decode func([]string) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &StoreError{Op: op, Path: path, Err: err}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var bad []error
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, err := parseLine(text)
		if err != nil {
			bad = append(bad, &RecordError{Line: line, Record: []string{text}, Err: err})
			continue
		}
		if err := decode(rec); err != nil {
			bad = append(bad, &RecordError{Line: line, Record: rec, Err: err})
		}
	}
	if err := sc.Err(); err != nil {
		return &StoreError{Op: op, Path: path, Err: err}
	}

	if len(bad) > 0 {
		return &StoreError{Op: op, Path: path, Err: errors.Join(bad...)}
	}
	return nil
}

func parseLine(text string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rec, err := r.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, perr.Err
		}
		return nil, err
	}
	return rec, nil
}

// writeRecords replaces path through a temp file and rename so readers never see a partial file.
func writeRecords(path, op string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StoreError{Op: op, Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &StoreError{Op: op, Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		_ = tmp.Close()
		return &StoreError{Op: op, Path: tmp.Name(), Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Op: op, Path: tmp.Name(), Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &StoreError{Op: op, Path: path, Err: err}
	}
	return nil
}

func encodeRoom(r models.Room) []string {
	return []string{
		strconv.Itoa(r.ID),
		string(r.Category),
		r.Rate.StringFixed(2),
		strconv.FormatBool(r.IsBooked),
	}
}

func decodeRoom(rec []string) (models.Room, error) {
	if len(rec) != roomFields {
		return models.Room{}, fmt.Errorf("want %d fields, got %d", roomFields, len(rec))
	}

	id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return models.Room{}, fmt.Errorf("room id: %w", err)
	}
	category, err := models.ParseCategory(strings.TrimSpace(rec[1]))
	if err != nil {
		return models.Room{}, err
	}
	rate, err := models.ParseRate(rec[2])
	if err != nil {
		return models.Room{}, err
	}
	booked, err := strconv.ParseBool(strings.TrimSpace(rec[3]))
	if err != nil {
		return models.Room{}, fmt.Errorf("booked flag: %w", err)
	}

	return models.Room{ID: id, Category: category, Rate: rate, IsBooked: booked}, nil
}

func encodeBooking(b models.Booking) []string {
	return []string{
		strconv.Itoa(b.RoomID),
		b.Guest.Name,
		b.Guest.Mobile,
		b.CheckIn.Format(models.DateLayout),
		b.CheckOut.Format(models.DateLayout),
		b.TotalAmount.StringFixed(2),
	}
}

func decodeBooking(rec []string) (models.Booking, error) {
	if len(rec) != bookingFields {
		return models.Booking{}, fmt.Errorf("want %d fields, got %d", bookingFields, len(rec))
	}

	roomID, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return models.Booking{}, fmt.Errorf("room id: %w", err)
	}
	in, err := models.ParseDay(strings.TrimSpace(rec[3]))
	if err != nil {
		return models.Booking{}, err
	}
	out, err := models.ParseDay(strings.TrimSpace(rec[4]))
	if err != nil {
		return models.Booking{}, err
	}
	total, err := decimal.NewFromString(strings.TrimSpace(rec[5]))
	if err != nil {
		return models.Booking{}, fmt.Errorf("total amount: %w", err)
	}

	return models.Booking{
		RoomID:      roomID,
		Guest:       models.Guest{Name: rec[1], Mobile: rec[2]},
		CheckIn:     in,
		CheckOut:    out,
		TotalAmount: total,
	}, nil
}
