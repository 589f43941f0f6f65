package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

func bookingRows(booking *domain.Booking) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trip_id", "passenger_id", "seats_requested",
		"pickup_location", "pickup_lat", "pickup_lng",
		"drop_location", "drop_lat", "drop_lng",
		"status", "cost_contribution", "created_at",
	}).AddRow(
		booking.ID, booking.TripID, booking.PassengerID, booking.SeatsRequested,
		booking.PickupLocation, booking.PickupLat, booking.PickupLng,
		booking.DropLocation, booking.DropLat, booking.DropLng,
		string(booking.Status), booking.CostContribution, booking.CreatedAt,
	)
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:             "booking-1",
		TripID:         "trip-1",
		PassengerID:    "passenger-1",
		SeatsRequested: 2,
		PickupLocation: "Indiranagar",
		PickupLat:      12.97,
		PickupLng:      77.64,
		DropLocation:   "Whitefield",
		DropLat:        12.96,
		DropLng:        77.75,
		Status:         domain.BookingStatusPending,
		CreatedAt:      time.Now().Truncate(time.Second),
	}
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		booking := sampleBooking()
		mock.ExpectExec(`(?s)INSERT INTO bookings .+ VALUES`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), booking)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Active Duplicate Maps To ErrDuplicate", func(t *testing.T) {
		mock.ExpectExec(`(?s)INSERT INTO bookings .+ VALUES`).
			WillReturnError(&pq.Error{
				Code:       "23505",
				Constraint: "bookings_active_passenger_idx",
			})

		err := repo.Create(context.Background(), sampleBooking())
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Other Errors Pass Through", func(t *testing.T) {
		mock.ExpectExec(`(?s)INSERT INTO bookings .+ VALUES`).
			WillReturnError(&pq.Error{Code: "23503"})

		err := repo.Create(context.Background(), sampleBooking())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetActiveByTripAndPassenger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+ FROM bookings\s+WHERE trip_id = \$1 AND passenger_id = \$2 AND status IN \(\$3, \$4\)`).
			WithArgs("trip-1", "passenger-1",
				string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)).
			WillReturnRows(bookingRows(sampleBooking()))

		booking, err := repo.GetActiveByTripAndPassenger(context.Background(), "trip-1", "passenger-1")
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Equal(t, "booking-1", booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("None Is Not An Error", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+ FROM bookings\s+WHERE trip_id = \$1 AND passenger_id = \$2 AND status IN \(\$3, \$4\)`).
			WithArgs("trip-1", "passenger-2",
				string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := repo.GetActiveByTripAndPassenger(context.Background(), "trip-1", "passenger-2")
		assert.NoError(t, err)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_ActiveSeatSum(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	mock.ExpectQuery(`(?s)SELECT COALESCE\(SUM\(seats_requested\), 0\)\s+FROM bookings\s+WHERE trip_id = \$1 AND status IN \(\$2, \$3\)`).
		WithArgs("trip-1",
			string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))

	sum, err := repo.ActiveSeatSum(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE id = \$2 AND status = \$3`).
			WithArgs(string(domain.BookingStatusConfirmed), "booking-1", string(domain.BookingStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), "booking-1",
			domain.BookingStatusPending, domain.BookingStatusConfirmed)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Terminal State Is Sticky", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status = \$1 WHERE id = \$2 AND status = \$3`).
			WithArgs(string(domain.BookingStatusConfirmed), "booking-1", string(domain.BookingStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), "booking-1",
			domain.BookingStatusPending, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, repository.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
