package redis

import (
	"context"

	"carpool/internal/domain"
)

// TripCacheInterface defines the interface for trip caching.
type TripCacheInterface interface {
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	SetTrip(ctx context.Context, trip *domain.Trip) error
	InvalidateTrip(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var _ TripCacheInterface = (*CacheStore)(nil)
