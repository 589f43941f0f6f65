package handler

import (
	"errors"
	"net/http"
	"testing"

	"carpool/internal/repository"
	"carpool/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidSeatCount, http.StatusBadRequest},
		{service.ErrInvalidDeparture, http.StatusBadRequest},
		{service.ErrInvalidVehicleType, http.StatusBadRequest},
		{service.ErrNotAuthorized, http.StatusForbidden},
		{service.ErrSelfBooking, http.StatusConflict},
		{service.ErrDuplicateBooking, http.StatusConflict},
		{service.ErrInsufficientSeatsAdvertised, http.StatusConflict},
		{service.ErrInsufficientSeats, http.StatusConflict},
		{service.ErrInvalidBookingState, http.StatusConflict},
		{service.ErrTripNotOpen, http.StatusConflict},
		{service.ErrRouteUnavailable, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
