package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/anvivatsa1/DreamStay/internal/dto"
	"github.com/anvivatsa1/DreamStay/internal/models"
	"github.com/anvivatsa1/DreamStay/internal/service"
	"github.com/labstack/echo/v4"
)

const serviceName = "dreamstay"

type HotelHandler struct {
	svc service.HotelService
	log *slog.Logger
	now func() time.Time
}

func NewHotelHandler(svc service.HotelService, log *slog.Logger) *HotelHandler {
	return &HotelHandler{svc: svc, log: log, now: time.Now}
}

func (h *HotelHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/rooms", h.ListRooms)
	api.GET("/rooms/all", h.ListAllRooms)
	api.GET("/bookings", h.ListBookings)
	api.POST("/book", h.BookRoom)
	api.POST("/checkout", h.Checkout)
	api.GET("/status", h.Status)
}

// ListRooms returns the free rooms of ?type=, defaulting to ANY.
// An unknown type yields an empty list.
func (h *HotelHandler) ListRooms(c echo.Context) error {
	category := models.CategoryAny
	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		category = models.Category(strings.ToUpper(t))
	}
	return c.JSON(http.StatusOK, dto.ToRoomResponses(h.svc.SearchRooms(category)))
}

func (h *HotelHandler) ListAllRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToRoomResponses(h.svc.Rooms()))
}

func (h *HotelHandler) ListBookings(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.ToBookingResponses(h.svc.AllBookings()))
}

func (h *HotelHandler) BookRoom(c echo.Context) error {
	var req dto.BookRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	roomID, err := strconv.Atoi(strings.TrimSpace(req.RoomID.String()))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid roomId")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Mobile) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and mobile are required")
	}
	checkIn, err := models.ParseDay(strings.TrimSpace(req.CheckIn))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid checkIn, want %s", models.DateLayout))
	}
	checkOut, err := models.ParseDay(strings.TrimSpace(req.CheckOut))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid checkOut, want %s", models.DateLayout))
	}

	booking, err := h.svc.BookRoom(c.Request().Context(), service.BookRoomInput{
		RoomID:    roomID,
		GuestName: strings.TrimSpace(req.Name),
		Mobile:    strings.TrimSpace(req.Mobile),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	})
	if err != nil {
		h.log.Debug("http.book.refused", "room_id", roomID, "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *HotelHandler) Checkout(c echo.Context) error {
	roomID, err := strconv.Atoi(c.QueryParam("roomId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid roomId")
	}

	if err := h.svc.CheckOut(c.Request().Context(), roomID); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Checked out successfully for room %d", roomID)})
}

func (h *HotelHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.StatusResponse{
		Status:        "ok",
		Service:       serviceName,
		Time:          h.now().UTC(),
		TotalRooms:    h.svc.TotalRooms(),
		TotalBookings: h.svc.TotalBookings(),
	})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomAlreadyBooked), errors.Is(err, service.ErrRoomNotOccupied):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStayDuration), errors.Is(err, service.ErrInvalidGuest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}
}
