package dto

import (
	"time"

	"github.com/anvivatsa1/DreamStay/internal/models"
)

type RoomResponse struct {
	RoomID        int     `json:"roomId"`
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
	Booked        bool    `json:"booked"`
}

type GuestResponse struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

type BookingResponse struct {
	RoomID      int           `json:"roomId"`
	Guest       GuestResponse `json:"guest"`
	CheckIn     string        `json:"checkIn"`
	CheckOut    string        `json:"checkOut"`
	TotalAmount float64       `json:"totalAmount"`
}

type StatusResponse struct {
	Status        string    `json:"status"`
	Service       string    `json:"service"`
	Time          time.Time `json:"time"`
	TotalRooms    int       `json:"totalRooms"`
	TotalBookings int       `json:"totalBookings"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		RoomID:        r.ID,
		Type:          string(r.Category),
		PricePerNight: r.Rate.InexactFloat64(),
		Booked:        r.IsBooked,
	}
}

func ToRoomResponses(rooms []models.Room) []RoomResponse {
	resp := make([]RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = ToRoomResponse(&rooms[i])
	}
	return resp
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		RoomID:      b.RoomID,
		Guest:       GuestResponse{Name: b.Guest.Name, Mobile: b.Guest.Mobile},
		CheckIn:     b.CheckIn.Format(models.DateLayout),
		CheckOut:    b.CheckOut.Format(models.DateLayout),
		TotalAmount: b.TotalAmount.Round(2).InexactFloat64(),
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
