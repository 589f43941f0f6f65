package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

const vehicleColumns = `id, owner_id, type, model, number_plate, seats_total`

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetByOwnerAndType retrieves the owner's vehicle of the given type.
func (r *VehicleRepository) GetByOwnerAndType(ctx context.Context, ownerID string, vehicleType domain.VehicleType) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 AND type = $2`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, ownerID, vehicleType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// FindOrCreate returns the owner's existing vehicle of the given type,
// inserting the provided one when none exists. ON CONFLICT on the unique
// (owner_id, type) constraint keeps concurrent trip posts from creating
// duplicate rows: the loser of the race reads the winner's row back.
func (r *VehicleRepository) FindOrCreate(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, type) DO NOTHING
		RETURNING ` + vehicleColumns + `
	`

	created, err := scanVehicle(r.q.QueryRowContext(ctx, query,
		vehicle.ID,
		vehicle.OwnerID,
		vehicle.Type,
		vehicle.Model,
		vehicle.NumberPlate,
		vehicle.SeatsTotal,
	))
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Insert was skipped, a row already exists for (owner, type).
	return r.GetByOwnerAndType(ctx, vehicle.OwnerID, vehicle.Type)
}

func scanVehicle(s scanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := s.Scan(
		&vehicle.ID,
		&vehicle.OwnerID,
		&vehicle.Type,
		&vehicle.Model,
		&vehicle.NumberPlate,
		&vehicle.SeatsTotal,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
