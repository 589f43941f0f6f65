package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

const bookingColumns = `
	id, trip_id, passenger_id, seats_requested,
	pickup_location, pickup_lat, pickup_lng,
	drop_location, drop_lat, drop_lng,
	status, cost_contribution, created_at
`

// Create persists a new booking. The partial unique index
// bookings_active_passenger_idx on (trip_id, passenger_id) WHERE status IN
// ('pending', 'confirmed') backs the duplicate check; violations surface as
// repository.ErrDuplicate.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var contribution sql.NullFloat64
	if booking.CostContribution > 0 {
		contribution = sql.NullFloat64{Float64: booking.CostContribution, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.PassengerID,
		booking.SeatsRequested,
		booking.PickupLocation,
		booking.PickupLat,
		booking.PickupLng,
		booking.DropLocation,
		booking.DropLat,
		booking.DropLng,
		booking.Status,
		contribution,
		booking.CreatedAt,
	)

	return mapInsertError(err)
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// GetByTripID retrieves all bookings for a trip, newest first.
func (r *BookingRepository) GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, tripID)
}

// GetByPassengerID retrieves all bookings made by a passenger, newest first.
func (r *BookingRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE passenger_id = $1
		ORDER BY created_at DESC
	`
	return r.queryMany(ctx, query, passengerID)
}

// GetActiveByTripAndPassenger retrieves the passenger's pending or confirmed
// booking on a trip. Returns nil if none exists.
func (r *BookingRepository) GetActiveByTripAndPassenger(ctx context.Context, tripID, passengerID string) (*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1 AND passenger_id = $2 AND status IN ($3, $4)
		LIMIT 1
	`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query,
		tripID, passengerID, domain.BookingStatusPending, domain.BookingStatusConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return booking, nil
}

// ActiveSeatSum returns the sum of seats_requested over the trip's pending
// and confirmed bookings.
func (r *BookingRepository) ActiveSeatSum(ctx context.Context, tripID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(seats_requested), 0)
		FROM bookings
		WHERE trip_id = $1 AND status IN ($2, $3)
	`

	var sum int
	err := r.q.QueryRowContext(ctx, query,
		tripID, domain.BookingStatusPending, domain.BookingStatusConfirmed).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}

// UpdateStatus transitions a booking from one status to another. The
// from-status guard makes terminal states sticky: an already confirmed or
// cancelled booking matches no rows.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
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

func (r *BookingRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func scanBooking(s scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var contribution sql.NullFloat64

	err := s.Scan(
		&booking.ID,
		&booking.TripID,
		&booking.PassengerID,
		&booking.SeatsRequested,
		&booking.PickupLocation,
		&booking.PickupLat,
		&booking.PickupLng,
		&booking.DropLocation,
		&booking.DropLat,
		&booking.DropLng,
		&booking.Status,
		&contribution,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if contribution.Valid {
		booking.CostContribution = contribution.Float64
	}

	return &booking, nil
}

// Ensure BookingRepository implements repository.BookingRepository.
var _ repository.BookingRepository = (*BookingRepository)(nil)
