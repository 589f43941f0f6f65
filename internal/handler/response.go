package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidDeparture),
		errors.Is(err, service.ErrInvalidSeatsTotal),
		errors.Is(err, service.ErrInvalidVehicleType):
		return http.StatusBadRequest

	// Forbidden - wrong actor for a driver- or passenger-only operation
	case errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden

	// Conflict - capacity and state violations
	case errors.Is(err, service.ErrSelfBooking),
		errors.Is(err, service.ErrDuplicateBooking),
		errors.Is(err, service.ErrInsufficientSeatsAdvertised),
		errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrInvalidBookingState),
		errors.Is(err, service.ErrTripNotOpen):
		return http.StatusConflict

	// Upstream directions provider failure
	case errors.Is(err, service.ErrRouteUnavailable):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
