package service

import "errors"

var (
	// ErrInvalidSeatCount is returned when a booking requests fewer than one seat.
	ErrInvalidSeatCount = errors.New("seats requested must be at least 1")

	// ErrSelfBooking is returned when a driver tries to book their own trip.
	ErrSelfBooking = errors.New("cannot book your own trip")

	// ErrDuplicateBooking is returned when the passenger already has an active booking on the trip.
	ErrDuplicateBooking = errors.New("you already have a booking for this trip")

	// ErrInsufficientSeatsAdvertised is returned when the request exceeds the
	// trip's advertised seats_available counter.
	ErrInsufficientSeatsAdvertised = errors.New("not enough seats available")

	// ErrInsufficientSeats is returned when the request exceeds the seats
	// remaining after all pending and confirmed bookings.
	ErrInsufficientSeats = errors.New("not enough seats remaining after pending bookings")

	// ErrNotAuthorized is returned when an actor other than the trip's driver
	// attempts a driver-only transition, or a passenger touches a booking
	// they do not own.
	ErrNotAuthorized = errors.New("not authorized to modify this booking")

	// ErrInvalidBookingState is returned on a transition out of a terminal booking state.
	ErrInvalidBookingState = errors.New("booking is not pending")

	// ErrTripNotOpen is returned when booking or closing a trip that is not open.
	ErrTripNotOpen = errors.New("trip is not open")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidUserID is returned when the acting user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidLocation is returned when a location is missing its name or
	// its coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidDeparture is returned when the departure time is zero or in the past.
	ErrInvalidDeparture = errors.New("departure time must be in the future")

	// ErrInvalidSeatsTotal is returned when a trip is posted with fewer than one seat.
	ErrInvalidSeatsTotal = errors.New("seats total must be at least 1")

	// ErrInvalidVehicleType is returned when the vehicle type is not car, bike or auto.
	ErrInvalidVehicleType = errors.New("invalid vehicle type")

	// ErrRouteUnavailable is returned when the directions provider cannot
	// produce a route between the given coordinates.
	ErrRouteUnavailable = errors.New("route could not be calculated")
)
