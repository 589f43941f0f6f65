package repository

import (
	"context"

	"carpool/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking. Returns ErrDuplicate when the passenger
	// already holds an active booking on the same trip.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByTripID retrieves all bookings for a trip, newest first.
	GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error)

	// GetByPassengerID retrieves all bookings made by a passenger, newest first.
	GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Booking, error)

	// GetActiveByTripAndPassenger retrieves the passenger's pending or
	// confirmed booking on a trip. Returns nil if none exists.
	GetActiveByTripAndPassenger(ctx context.Context, tripID, passengerID string) (*domain.Booking, error)

	// ActiveSeatSum returns the sum of seats_requested over the trip's
	// pending and confirmed bookings.
	ActiveSeatSum(ctx context.Context, tripID string) (int, error)

	// UpdateStatus transitions a booking from one status to another. Returns
	// ErrConflict when the booking is not currently in the expected status.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
}
