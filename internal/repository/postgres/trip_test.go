package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

func tripRows(trip *domain.Trip) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "driver_id", "vehicle_id", "start_location", "end_location",
		"start_lat", "start_lng", "end_lat", "end_lng",
		"route_polyline", "total_distance_km", "departure_time",
		"seats_total", "seats_available", "estimated_fuel_cost", "status", "created_at",
	}).AddRow(
		trip.ID, trip.DriverID, trip.VehicleID, trip.StartLocation, trip.EndLocation,
		trip.StartLat, trip.StartLng, trip.EndLat, trip.EndLng,
		trip.RoutePolyline, trip.TotalDistanceKm, trip.DepartureTime,
		trip.SeatsTotal, trip.SeatsAvailable, trip.EstimatedFuelCost, string(trip.Status), trip.CreatedAt,
	)
}

func sampleTrip() *domain.Trip {
	return &domain.Trip{
		ID:                "trip-1",
		DriverID:          "driver-1",
		VehicleID:         "vehicle-1",
		StartLocation:     "Indiranagar",
		EndLocation:       "Whitefield",
		StartLat:          12.97,
		StartLng:          77.64,
		EndLat:            12.96,
		EndLng:            77.75,
		RoutePolyline:     "abc",
		TotalDistanceKm:   18.2,
		DepartureTime:     time.Now().Add(2 * time.Hour).Truncate(time.Second),
		SeatsTotal:        3,
		SeatsAvailable:    3,
		EstimatedFuelCost: 146,
		Status:            domain.TripStatusOpen,
		CreatedAt:         time.Now().Truncate(time.Second),
	}
}

func TestTripRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(db)

	t.Run("Found", func(t *testing.T) {
		trip := sampleTrip()
		mock.ExpectQuery(`(?s)SELECT .+ FROM trips WHERE id = \$1`).
			WithArgs("trip-1").
			WillReturnRows(tripRows(trip))

		got, err := repo.GetByID(context.Background(), "trip-1")
		require.NoError(t, err)
		assert.Equal(t, trip.ID, got.ID)
		assert.Equal(t, trip.SeatsAvailable, got.SeatsAvailable)
		assert.Equal(t, trip.RoutePolyline, got.RoutePolyline)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+ FROM trips WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		got, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepository_GetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM trips WHERE id = \$1 FOR UPDATE`).
		WithArgs("trip-1").
		WillReturnRows(tripRows(sampleTrip()))

	got, err := repo.GetByIDForUpdate(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-1", got.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_DecrementSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE trips\s+SET seats_available = seats_available - \$1\s+WHERE id = \$2 AND seats_available >= \$1`).
			WithArgs(2, "trip-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementSeats(context.Background(), "trip-1", 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Guard Refuses Negative Counter", func(t *testing.T) {
		mock.ExpectExec(`UPDATE trips\s+SET seats_available = seats_available - \$1\s+WHERE id = \$2 AND seats_available >= \$1`).
			WithArgs(5, "trip-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementSeats(context.Background(), "trip-1", 5)
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE trips SET status = \$1 WHERE id = \$2`).
			WithArgs(string(domain.TripStatusClosed), "trip-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), "trip-1", domain.TripStatusClosed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE trips SET status = \$1 WHERE id = \$2`).
			WithArgs(string(domain.TripStatusClosed), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), "missing", domain.TripStatusClosed)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTripRepository_SearchOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTripRepository(db)
	departAfter := time.Now().Truncate(time.Second)

	mock.ExpectQuery(`(?s)SELECT .+ FROM trips\s+WHERE status = \$1 AND departure_time >= \$2\s+ORDER BY departure_time ASC\s+LIMIT 100`).
		WithArgs(string(domain.TripStatusOpen), departAfter).
		WillReturnRows(tripRows(sampleTrip()))

	trips, err := repo.SearchOpen(context.Background(), departAfter)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "trip-1", trips[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
