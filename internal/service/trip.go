package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/route"
)

// TripCacheStore is the read/write cache interface used by TripService.
type TripCacheStore interface {
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	SetTrip(ctx context.Context, trip *domain.Trip) error
	InvalidateTrip(ctx context.Context, tripID string) error
}

// TripService handles trip posting, search and retrieval.
type TripService struct {
	tripRepo      repository.TripRepository
	bookingRepo   repository.BookingRepository
	vehicleRepo   repository.VehicleRepository
	profileRepo   repository.ProfileRepository
	estimator     route.Estimator
	cache         TripCacheStore
	fuelRatePerKm float64
}

// NewTripService creates a new TripService. cache may be nil.
func NewTripService(
	tripRepo repository.TripRepository,
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	profileRepo repository.ProfileRepository,
	estimator route.Estimator,
	cache TripCacheStore,
	fuelRatePerKm float64,
) *TripService {
	return &TripService{
		tripRepo:      tripRepo,
		bookingRepo:   bookingRepo,
		vehicleRepo:   vehicleRepo,
		profileRepo:   profileRepo,
		estimator:     estimator,
		cache:         cache,
		fuelRatePerKm: fuelRatePerKm,
	}
}

// PostTripRequest contains the parameters for posting a trip.
type PostTripRequest struct {
	DriverID      string
	StartLocation string
	EndLocation   string
	StartLat      float64
	StartLng      float64
	EndLat        float64
	EndLng        float64
	DepartureTime time.Time
	VehicleType   domain.VehicleType
	SeatsTotal    int

	// FuelCost overrides the suggestion derived from the route. Zero means
	// take the suggestion.
	FuelCost float64
}

// PostTrip estimates the route, finds or lazily creates the driver's vehicle,
// and persists an open trip with seats_available = seats_total.
func (s *TripService) PostTrip(ctx context.Context, req PostTripRequest) (*domain.Trip, error) {
	if err := s.validatePostRequest(req); err != nil {
		return nil, err
	}

	estimate, err := s.estimator.Estimate(ctx,
		route.Coordinate{Lat: req.StartLat, Lng: req.StartLng},
		route.Coordinate{Lat: req.EndLat, Lng: req.EndLng},
	)
	if err != nil {
		return nil, ErrRouteUnavailable
	}

	fuelCost := req.FuelCost
	if fuelCost <= 0 {
		fuelCost = route.SuggestFuelCost(estimate.DistanceKm, s.fuelRatePerKm)
	}

	vehicle, err := s.vehicleRepo.FindOrCreate(ctx, &domain.Vehicle{
		ID:          uuid.New().String(),
		OwnerID:     req.DriverID,
		Type:        req.VehicleType,
		Model:       "My " + string(req.VehicleType),
		NumberPlate: "TBD",
		SeatsTotal:  req.SeatsTotal,
	})
	if err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:                uuid.New().String(),
		DriverID:          req.DriverID,
		VehicleID:         vehicle.ID,
		StartLocation:     req.StartLocation,
		EndLocation:       req.EndLocation,
		StartLat:          req.StartLat,
		StartLng:          req.StartLng,
		EndLat:            req.EndLat,
		EndLng:            req.EndLng,
		RoutePolyline:     estimate.Polyline,
		TotalDistanceKm:   estimate.DistanceKm,
		DepartureTime:     req.DepartureTime,
		SeatsTotal:        req.SeatsTotal,
		SeatsAvailable:    req.SeatsTotal,
		EstimatedFuelCost: fuelCost,
		Status:            domain.TripStatusOpen,
		CreatedAt:         time.Now(),
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

func (s *TripService) validatePostRequest(req PostTripRequest) error {
	if req.DriverID == "" {
		return ErrInvalidUserID
	}

	if req.StartLocation == "" || req.EndLocation == "" {
		return ErrInvalidLocation
	}

	start := route.Coordinate{Lat: req.StartLat, Lng: req.StartLng}
	end := route.Coordinate{Lat: req.EndLat, Lng: req.EndLng}
	if !start.Valid() || !end.Valid() {
		return ErrInvalidLocation
	}

	if req.DepartureTime.IsZero() || req.DepartureTime.Before(time.Now()) {
		return ErrInvalidDeparture
	}

	if req.SeatsTotal < 1 {
		return ErrInvalidSeatsTotal
	}

	switch req.VehicleType {
	case domain.VehicleTypeCar, domain.VehicleTypeBike, domain.VehicleTypeAuto:
	default:
		return ErrInvalidVehicleType
	}

	return nil
}

// SearchTrips returns open trips departing from now on, soonest first.
func (s *TripService) SearchTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.SearchOpen(ctx, time.Now())
}

// TripDetail is a trip with its driver, vehicle and live remaining capacity.
type TripDetail struct {
	Trip           *domain.Trip
	Driver         *domain.Profile
	Vehicle        *domain.Vehicle
	RemainingSeats int
}

// GetTrip retrieves a trip with driver, vehicle and remaining seats. The
// remaining count is always recomputed from the active bookings; only the
// trip row itself is served from cache.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*TripDetail, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.lookupTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	activeSum, err := s.bookingRepo.ActiveSeatSum(ctx, tripID)
	if err != nil {
		return nil, err
	}

	detail := &TripDetail{
		Trip:           trip,
		RemainingSeats: remainingFromSum(trip, activeSum),
	}

	if driver, err := s.profileRepo.GetByID(ctx, trip.DriverID); err == nil {
		detail.Driver = driver
	}
	if vehicle, err := s.vehicleRepo.GetByID(ctx, trip.VehicleID); err == nil {
		detail.Vehicle = vehicle
	}

	return detail, nil
}

func (s *TripService) lookupTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTrip(ctx, tripID); err == nil && cached != nil {
			return cached, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetTrip(ctx, trip)
	}

	return trip, nil
}

// RemainingSeats returns how many seats are still bookable on the trip.
func (s *TripService) RemainingSeats(ctx context.Context, tripID string) (int, error) {
	if tripID == "" {
		return 0, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return 0, err
	}

	activeSum, err := s.bookingRepo.ActiveSeatSum(ctx, tripID)
	if err != nil {
		return 0, err
	}

	return remainingFromSum(trip, activeSum), nil
}

// CloseTrip marks the driver's open trip closed. Closed trips stay visible to
// their participants but admit no new bookings.
func (s *TripService) CloseTrip(ctx context.Context, tripID, actorID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	if actorID == "" {
		return nil, ErrInvalidUserID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.DriverID != actorID {
		return nil, ErrNotAuthorized
	}

	if trip.Status != domain.TripStatusOpen {
		return nil, ErrTripNotOpen
	}

	if err := s.tripRepo.UpdateStatus(ctx, tripID, domain.TripStatusClosed); err != nil {
		return nil, err
	}

	trip.Status = domain.TripStatusClosed

	if s.cache != nil {
		_ = s.cache.InvalidateTrip(ctx, tripID)
	}

	return trip, nil
}

// RouteEstimate is a route estimate with the derived fuel-cost suggestion.
type RouteEstimate struct {
	DistanceKm        float64
	DurationMinutes   float64
	Polyline          string
	SuggestedFuelCost float64
}

// EstimateRoute resolves a route between two coordinates and derives the
// fuel-cost suggestion shown to the driver before posting.
func (s *TripService) EstimateRoute(ctx context.Context, origin, destination route.Coordinate) (*RouteEstimate, error) {
	if !origin.Valid() || !destination.Valid() {
		return nil, ErrInvalidLocation
	}

	estimate, err := s.estimator.Estimate(ctx, origin, destination)
	if err != nil {
		return nil, ErrRouteUnavailable
	}

	return &RouteEstimate{
		DistanceKm:        estimate.DistanceKm,
		DurationMinutes:   estimate.DurationMinutes,
		Polyline:          estimate.Polyline,
		SuggestedFuelCost: route.SuggestFuelCost(estimate.DistanceKm, s.fuelRatePerKm),
	}, nil
}
