package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// ProfileRepository is a PostgreSQL implementation of repository.ProfileRepository.
type ProfileRepository struct {
	q Querier
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{q: db}
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, name, rating, total_rides_as_driver, total_rides_as_passenger,
		       total_co2_saved_kg, created_at
		FROM profiles WHERE id = $1
	`

	var profile domain.Profile
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Rating,
		&profile.TotalRidesAsDriver,
		&profile.TotalRidesAsPassenger,
		&profile.TotalCO2SavedKg,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// CommunityStats aggregates environmental figures across all profiles. Km
// shared comes from the distance of trips with at least one confirmed booking.
func (r *ProfileRepository) CommunityStats(ctx context.Context) (*domain.CommunityStats, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(total_co2_saved_kg), 0) FROM profiles),
			(SELECT COALESCE(SUM(t.total_distance_km), 0)
			 FROM trips t
			 WHERE EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.trip_id = t.id AND b.status = $1
			 )),
			(SELECT COUNT(*) FROM profiles)
	`

	var stats domain.CommunityStats
	err := r.q.QueryRowContext(ctx, query, domain.BookingStatusConfirmed).Scan(
		&stats.TotalCO2SavedKg,
		&stats.TotalKmShared,
		&stats.TotalMembers,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Ensure ProfileRepository implements repository.ProfileRepository.
var _ repository.ProfileRepository = (*ProfileRepository)(nil)
