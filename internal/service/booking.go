package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/relay"
	"carpool/internal/repository"
)

// EventPublisher emits booking events for the notification relay.
// Deliveries are best-effort; a publish failure never fails the operation.
type EventPublisher interface {
	Publish(ctx context.Context, event relay.BookingEvent) error
}

// TripCache invalidates cached trips whose counters changed.
type TripCache interface {
	InvalidateTrip(ctx context.Context, tripID string) error
}

// BookingService handles booking admission and lifecycle.
type BookingService struct {
	tx          repository.TxManager
	bookingRepo repository.BookingRepository
	tripRepo    repository.TripRepository
	profileRepo repository.ProfileRepository
	events      EventPublisher
	cache       TripCache
}

// NewBookingService creates a new BookingService. events and cache may be nil.
func NewBookingService(
	tx repository.TxManager,
	bookingRepo repository.BookingRepository,
	tripRepo repository.TripRepository,
	profileRepo repository.ProfileRepository,
	events EventPublisher,
	cache TripCache,
) *BookingService {
	return &BookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		profileRepo: profileRepo,
		events:      events,
		cache:       cache,
	}
}

// RequestBookingRequest contains the parameters for requesting a booking.
type RequestBookingRequest struct {
	TripID         string
	PassengerID    string
	SeatsRequested int

	// Optional pickup/drop overrides; default to the trip's start and end.
	PickupLocation string
	PickupLat      float64
	PickupLng      float64
	DropLocation   string
	DropLat        float64
	DropLng        float64
}

// RequestBooking validates a seat request against the trip's capacity and
// creates a pending booking. The checks and the insert run in one transaction
// holding the trip row lock, so two concurrent requests for the last seats
// cannot both pass the capacity check.
func (s *BookingService) RequestBooking(ctx context.Context, req RequestBookingRequest) (*domain.Booking, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.PassengerID == "" {
		return nil, ErrInvalidUserID
	}
	if req.SeatsRequested < 1 {
		return nil, ErrInvalidSeatCount
	}

	var booking *domain.Booking
	var trip *domain.Trip

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		trip, err = r.Trips.GetByIDForUpdate(ctx, req.TripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusOpen {
			return ErrTripNotOpen
		}

		if req.PassengerID == trip.DriverID {
			return ErrSelfBooking
		}

		existing, err := r.Bookings.GetActiveByTripAndPassenger(ctx, trip.ID, req.PassengerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateBooking
		}

		// Cheap pre-check against the advertised counter. It can lag behind
		// the authoritative sum below, never the other way around.
		if req.SeatsRequested > trip.SeatsAvailable {
			return ErrInsufficientSeatsAdvertised
		}

		// Authoritative check: pending requests hold seats too.
		activeSum, err := r.Bookings.ActiveSeatSum(ctx, trip.ID)
		if err != nil {
			return err
		}
		if req.SeatsRequested > remainingFromSum(trip, activeSum) {
			return ErrInsufficientSeats
		}

		booking = buildBooking(trip, req)
		if err := r.Bookings.Create(ctx, booking); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateBooking
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, relay.KindBookingRequested, booking, trip)

	return booking, nil
}

func buildBooking(trip *domain.Trip, req RequestBookingRequest) *domain.Booking {
	booking := &domain.Booking{
		ID:             uuid.New().String(),
		TripID:         trip.ID,
		PassengerID:    req.PassengerID,
		SeatsRequested: req.SeatsRequested,
		PickupLocation: req.PickupLocation,
		PickupLat:      req.PickupLat,
		PickupLng:      req.PickupLng,
		DropLocation:   req.DropLocation,
		DropLat:        req.DropLat,
		DropLng:        req.DropLng,
		Status:         domain.BookingStatusPending,
		CreatedAt:      time.Now(),
	}

	if booking.PickupLocation == "" {
		booking.PickupLocation = trip.StartLocation
		booking.PickupLat = trip.StartLat
		booking.PickupLng = trip.StartLng
	}
	if booking.DropLocation == "" {
		booking.DropLocation = trip.EndLocation
		booking.DropLat = trip.EndLat
		booking.DropLng = trip.EndLng
	}

	return booking
}

// ConfirmBookingRequest contains the parameters for confirming a booking.
type ConfirmBookingRequest struct {
	BookingID string
	ActorID   string
}

// ConfirmBooking accepts a pending booking. The status change and the seat
// decrement commit as a unit; applying them as two separate writes loses
// seats when two confirmations race.
func (s *BookingService) ConfirmBooking(ctx context.Context, req ConfirmBookingRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if req.ActorID == "" {
		return nil, ErrInvalidUserID
	}

	var booking *domain.Booking
	var trip *domain.Trip

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		booking, err = r.Bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			return err
		}

		trip, err = r.Trips.GetByIDForUpdate(ctx, booking.TripID)
		if err != nil {
			return err
		}

		if trip.DriverID != req.ActorID {
			return ErrNotAuthorized
		}

		if booking.Status != domain.BookingStatusPending {
			return ErrInvalidBookingState
		}

		if err := r.Bookings.UpdateStatus(ctx, booking.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrInvalidBookingState
			}
			return err
		}

		if err := r.Trips.DecrementSeats(ctx, trip.ID, booking.SeatsRequested); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrInsufficientSeats
			}
			return err
		}

		booking.Status = domain.BookingStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateTrip(ctx, trip.ID)
	}
	s.publish(ctx, relay.KindBookingConfirmed, booking, trip)

	return booking, nil
}

// RejectBookingRequest contains the parameters for rejecting a booking.
type RejectBookingRequest struct {
	BookingID string
	ActorID   string
}

// RejectBooking declines a pending booking. seats_available is untouched
// because it was never decremented for a pending request.
func (s *BookingService) RejectBooking(ctx context.Context, req RejectBookingRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if req.ActorID == "" {
		return nil, ErrInvalidUserID
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err != nil {
		return nil, err
	}

	if trip.DriverID != req.ActorID {
		return nil, ErrNotAuthorized
	}

	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidBookingState
	}

	// Single conditional update; the status guard closes the window between
	// the read above and this write.
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusPending, domain.BookingStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidBookingState
		}
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled
	s.publish(ctx, relay.KindBookingRejected, booking, trip)

	return booking, nil
}

// CancelBookingRequest contains the parameters for a passenger cancelling
// their own pending booking.
type CancelBookingRequest struct {
	BookingID string
	ActorID   string
}

// CancelBooking withdraws the passenger's own pending request.
func (s *BookingService) CancelBooking(ctx context.Context, req CancelBookingRequest) (*domain.Booking, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if req.ActorID == "" {
		return nil, ErrInvalidUserID
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.PassengerID != req.ActorID {
		return nil, ErrNotAuthorized
	}

	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidBookingState
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.BookingStatusPending, domain.BookingStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrInvalidBookingState
		}
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled

	trip, err := s.tripRepo.GetByID(ctx, booking.TripID)
	if err == nil {
		s.publish(ctx, relay.KindBookingWithdrawn, booking, trip)
	}

	return booking, nil
}

// ListForTrip returns all bookings on a trip. Only the trip's driver may list them.
func (s *BookingService) ListForTrip(ctx context.Context, tripID, actorID string) ([]*domain.Booking, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.DriverID != actorID {
		return nil, ErrNotAuthorized
	}

	return s.bookingRepo.GetByTripID(ctx, tripID)
}

// ListForPassenger returns all bookings made by the passenger.
func (s *BookingService) ListForPassenger(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	if passengerID == "" {
		return nil, ErrInvalidUserID
	}

	return s.bookingRepo.GetByPassengerID(ctx, passengerID)
}

// publish emits a booking event after the mutation committed. Best-effort: a
// missed notification is not recoverable and not retried.
func (s *BookingService) publish(ctx context.Context, kind relay.Kind, booking *domain.Booking, trip *domain.Trip) {
	if s.events == nil {
		return
	}

	event := relay.BookingEvent{
		Kind:           kind,
		BookingID:      booking.ID,
		TripID:         trip.ID,
		DriverID:       trip.DriverID,
		PassengerID:    booking.PassengerID,
		SeatsRequested: booking.SeatsRequested,
		StartLocation:  trip.StartLocation,
		EndLocation:    trip.EndLocation,
		OccurredAt:     time.Now(),
	}

	if kind == relay.KindBookingRequested && s.profileRepo != nil {
		if profile, err := s.profileRepo.GetByID(ctx, booking.PassengerID); err == nil {
			event.PassengerName = profile.Name
		}
	}

	_ = s.events.Publish(ctx, event)
}
