package repository

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetByIDForUpdate retrieves a trip by ID and locks its row for the
	// duration of the enclosing transaction. Callers must use a
	// transaction-scoped repository.
	GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error)

	// SearchOpen retrieves open trips departing at or after the given time,
	// ordered by departure time.
	SearchOpen(ctx context.Context, departAfter time.Time) ([]*domain.Trip, error)

	// UpdateStatus sets the status of a trip.
	UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error

	// DecrementSeats subtracts seats from seats_available, refusing to go
	// below zero. Returns ErrConflict when the decrement would violate the
	// 0 <= seats_available invariant.
	DecrementSeats(ctx context.Context, id string, seats int) error
}
