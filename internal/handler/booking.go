package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RequestBookingRequest is the HTTP request body for requesting a booking.
type RequestBookingRequest struct {
	SeatsRequested int     `json:"seats_requested"`
	PickupLocation string  `json:"pickup_location,omitempty"`
	PickupLat      float64 `json:"pickup_lat,omitempty"`
	PickupLng      float64 `json:"pickup_lng,omitempty"`
	DropLocation   string  `json:"drop_location,omitempty"`
	DropLat        float64 `json:"drop_lat,omitempty"`
	DropLng        float64 `json:"drop_lng,omitempty"`
}

// BookingResponse is the HTTP response for booking operations.
type BookingResponse struct {
	ID               string  `json:"id"`
	TripID           string  `json:"trip_id"`
	PassengerID      string  `json:"passenger_id"`
	SeatsRequested   int     `json:"seats_requested"`
	PickupLocation   string  `json:"pickup_location"`
	PickupLat        float64 `json:"pickup_lat"`
	PickupLng        float64 `json:"pickup_lng"`
	DropLocation     string  `json:"drop_location"`
	DropLat          float64 `json:"drop_lat"`
	DropLng          float64 `json:"drop_lng"`
	CostContribution float64 `json:"cost_contribution"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

// RequestBooking handles POST /v1/trips/:id/bookings
func (h *BookingHandler) RequestBooking(c *gin.Context) {
	var req RequestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.RequestBooking(c.Request.Context(), service.RequestBookingRequest{
		TripID:         c.Param("id"),
		PassengerID:    middleware.UserID(c),
		SeatsRequested: req.SeatsRequested,
		PickupLocation: req.PickupLocation,
		PickupLat:      req.PickupLat,
		PickupLng:      req.PickupLng,
		DropLocation:   req.DropLocation,
		DropLat:        req.DropLat,
		DropLng:        req.DropLng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), service.ConfirmBookingRequest{
		BookingID: c.Param("id"),
		ActorID:   middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// RejectBooking handles POST /v1/bookings/:id/reject
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	booking, err := h.bookingService.RejectBooking(c.Request.Context(), service.RejectBookingRequest{
		BookingID: c.Param("id"),
		ActorID:   middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), service.CancelBookingRequest{
		BookingID: c.Param("id"),
		ActorID:   middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// ListForTrip handles GET /v1/trips/:id/bookings
func (h *BookingHandler) ListForTrip(c *gin.Context) {
	bookings, err := h.bookingService.ListForTrip(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// ListMine handles GET /v1/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.bookingService.ListForPassenger(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:               booking.ID,
		TripID:           booking.TripID,
		PassengerID:      booking.PassengerID,
		SeatsRequested:   booking.SeatsRequested,
		PickupLocation:   booking.PickupLocation,
		PickupLat:        booking.PickupLat,
		PickupLng:        booking.PickupLng,
		DropLocation:     booking.DropLocation,
		DropLat:          booking.DropLat,
		DropLng:          booking.DropLng,
		CostContribution: booking.CostContribution,
		Status:           string(booking.Status),
		CreatedAt:        booking.CreatedAt.Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	response := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response = append(response, toBookingResponse(booking))
	}
	return response
}
