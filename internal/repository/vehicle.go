package repository

import (
	"context"

	"carpool/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByOwnerAndType retrieves the owner's vehicle of the given type.
	GetByOwnerAndType(ctx context.Context, ownerID string, vehicleType domain.VehicleType) (*domain.Vehicle, error)

	// FindOrCreate returns the owner's existing vehicle of the given type,
	// inserting the provided one when none exists. Idempotent under the
	// unique (owner_id, type) constraint.
	FindOrCreate(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
}
