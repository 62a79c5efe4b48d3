package dto

import "encoding/json"

// BookRequest accepts the booking fields from a JSON body, a form or the query string.
// roomId may be a JSON number or a numeric string.
type BookRequest struct {
	RoomID   json.Number `json:"roomId" form:"roomId" query:"roomId"`
	Name     string      `json:"name" form:"name" query:"name"`
	Mobile   string      `json:"mobile" form:"mobile" query:"mobile"`
	CheckIn  string      `json:"checkIn" form:"checkIn" query:"checkIn"`
	CheckOut string      `json:"checkOut" form:"checkOut" query:"checkOut"`
}
