package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"carpool/internal/domain"
	"carpool/internal/relay"
	"carpool/internal/repository"
	"carpool/internal/route"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount         int32
	DecrementSeatsCallCount int32

	// Error injection
	CreateError         error
	GetByIDError        error
	DecrementSeatsError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{trips: make(map[string]*domain.Trip)}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

// GetTrip returns the stored trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trip, error) {
	return m.GetByID(ctx, id)
}

func (m *MockTripRepository) SearchOpen(ctx context.Context, departAfter time.Time) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0)
	for _, t := range m.trips {
		if t.Status == domain.TripStatusOpen && !t.DepartureTime.Before(departAfter) {
			copy := *t
			result = append(result, &copy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DepartureTime.Before(result[j].DepartureTime)
	})
	return result, nil
}

func (m *MockTripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	trip.Status = status
	return nil
}

func (m *MockTripRepository) DecrementSeats(ctx context.Context, id string, seats int) error {
	atomic.AddInt32(&m.DecrementSeatsCallCount, 1)
	if m.DecrementSeatsError != nil {
		return m.DecrementSeatsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	trip, ok := m.trips[id]
	if !ok {
		return repository.ErrNotFound
	}
	if trip.SeatsAvailable < seats {
		return repository.ErrConflict
	}
	trip.SeatsAvailable -= seats
	return nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{bookings: make(map[string]*domain.Booking)}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

// GetBooking returns the stored booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Mirror the partial unique index on active (trip, passenger) pairs.
	for _, b := range m.bookings {
		if b.TripID == booking.TripID && b.PassengerID == booking.PassengerID && b.Status.Active() {
			return repository.ErrDuplicate
		}
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByTripID(ctx context.Context, tripID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.TripID == tripID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetByPassengerID(ctx context.Context, passengerID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.PassengerID == passengerID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetActiveByTripAndPassenger(ctx context.Context, tripID, passengerID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.TripID == tripID && b.PassengerID == passengerID && b.Status.Active() {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockBookingRepository) ActiveSeatSum(ctx context.Context, tripID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := 0
	for _, b := range m.bookings {
		if b.TripID == tripID && b.Status.Active() {
			sum += b.SeatsRequested
		}
	}
	return sum, nil
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if booking.Status != from {
		return repository.ErrConflict
	}
	booking.Status = to
	return nil
}

// ──────────────────────────────────────────────
// MOCK PROFILE REPOSITORY
// ──────────────────────────────────────────────

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile

	Stats *domain.CommunityStats
}

// NewMockProfileRepository creates a new mock profile repository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[string]*domain.Profile)}
}

// AddProfile adds a profile to the mock repository.
func (m *MockProfileRepository) AddProfile(profile *domain.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.ID] = profile
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *profile
	return &copy, nil
}

func (m *MockProfileRepository) CommunityStats(ctx context.Context) (*domain.CommunityStats, error) {
	if m.Stats != nil {
		return m.Stats, nil
	}
	return &domain.CommunityStats{}, nil
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	FindOrCreateCallCount int32
	FindOrCreateError     error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{vehicles: make(map[string]*domain.Vehicle)}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByOwnerAndType(ctx context.Context, ownerID string, vehicleType domain.VehicleType) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.OwnerID == ownerID && v.Type == vehicleType {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) FindOrCreate(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	atomic.AddInt32(&m.FindOrCreateCallCount, 1)
	if m.FindOrCreateError != nil {
		return nil, m.FindOrCreateError
	}
	if existing, err := m.GetByOwnerAndType(ctx, vehicle.OwnerID, vehicle.Type); err == nil {
		return existing, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	copy := *vehicle
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK TX MANAGER
// ──────────────────────────────────────────────

// MockTxManager runs the function against the shared mocks without any real
// transaction. Rollback semantics are not simulated; tests assert on the
// error paths instead.
type MockTxManager struct {
	Trips    *MockTripRepository
	Bookings *MockBookingRepository

	WithinTxCallCount int32
	BeginError        error
}

// NewMockTxManager creates a mock transaction manager over the given mocks.
func NewMockTxManager(trips *MockTripRepository, bookings *MockBookingRepository) *MockTxManager {
	return &MockTxManager{Trips: trips, Bookings: bookings}
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(repository.TxRepos) error) error {
	atomic.AddInt32(&m.WithinTxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(repository.TxRepos{Trips: m.Trips, Bookings: m.Bookings})
}

// ──────────────────────────────────────────────
// RECORDING EVENT FEED
// ──────────────────────────────────────────────

// RecordingFeed captures published booking events for assertions.
type RecordingFeed struct {
	mu     sync.Mutex
	events []relay.BookingEvent

	PublishError error
}

// NewRecordingFeed creates an empty recording feed.
func NewRecordingFeed() *RecordingFeed {
	return &RecordingFeed{}
}

func (f *RecordingFeed) Publish(ctx context.Context, event relay.BookingEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

// Events returns a snapshot of the published events.
func (f *RecordingFeed) Events() []relay.BookingEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]relay.BookingEvent(nil), f.events...)
}

// ──────────────────────────────────────────────
// MOCK ROUTE ESTIMATOR
// ──────────────────────────────────────────────

// MockEstimator is a mock implementation of route.Estimator.
type MockEstimator struct {
	Result route.Estimate
	Err    error

	EstimateCallCount int32
}

func (m *MockEstimator) Estimate(ctx context.Context, origin, destination route.Coordinate) (*route.Estimate, error) {
	atomic.AddInt32(&m.EstimateCallCount, 1)
	if m.Err != nil {
		return nil, m.Err
	}
	result := m.Result
	return &result, nil
}
