package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `
	id, driver_id, vehicle_id, start_location, end_location,
	start_lat, start_lng, end_lat, end_lng,
	route_polyline, total_distance_km, departure_time,
	seats_total, seats_available, estimated_fuel_cost, status, created_at
`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	var polyline sql.NullString
	if trip.RoutePolyline != "" {
		polyline = sql.NullString{String: trip.RoutePolyline, Valid: true}
	}

	var distance sql.NullFloat64
	if trip.TotalDistanceKm > 0 {
		distance = sql.NullFloat64{Float64: trip.TotalDistanceKm, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.VehicleID,
		trip.StartLocation,
		trip.EndLocation,
		trip.StartLat,
		trip.StartLng,
		trip.EndLat,
		trip.EndLng,
		polyline,
		distance,
		trip.DepartureTime,
		trip.SeatsTotal,
		trip.SeatsAvailable,
		trip.EstimatedFuelCost,
		trip.Status,
		trip.CreatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a trip by ID with a row lock. Only meaningful on
// a transaction-scoped repository; booking admission uses it to serialize
// capacity checks per trip.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`
	return r.queryOne(ctx, query, id)
}

func (r *TripRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Trip, error) {
	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return trip, nil
}

// SearchOpen retrieves open trips departing at or after the given time.
func (r *TripRepository) SearchOpen(ctx context.Context, departAfter time.Time) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE status = $1 AND departure_time >= $2
		ORDER BY departure_time ASC
		LIMIT 100
	`

	rows, err := r.q.QueryContext(ctx, query, domain.TripStatusOpen, departAfter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// UpdateStatus sets the status of a trip.
func (r *TripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	query := `UPDATE trips SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DecrementSeats conditionally subtracts seats from seats_available. The
// WHERE guard keeps the counter from ever going negative even when two
// confirmations race.
func (r *TripRepository) DecrementSeats(ctx context.Context, id string, seats int) error {
	query := `
		UPDATE trips
		SET seats_available = seats_available - $1
		WHERE id = $2 AND seats_available >= $1
	`

	result, err := r.q.ExecContext(ctx, query, seats, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrConflict
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTrip.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (*domain.Trip, error) {
	var trip domain.Trip
	var polyline sql.NullString
	var distance sql.NullFloat64

	err := s.Scan(
		&trip.ID,
		&trip.DriverID,
		&trip.VehicleID,
		&trip.StartLocation,
		&trip.EndLocation,
		&trip.StartLat,
		&trip.StartLng,
		&trip.EndLat,
		&trip.EndLng,
		&polyline,
		&distance,
		&trip.DepartureTime,
		&trip.SeatsTotal,
		&trip.SeatsAvailable,
		&trip.EstimatedFuelCost,
		&trip.Status,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if polyline.Valid {
		trip.RoutePolyline = polyline.String
	}
	if distance.Valid {
		trip.TotalDistanceKm = distance.Float64
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
