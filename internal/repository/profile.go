package repository

import (
	"context"

	"carpool/internal/domain"
)

// ProfileRepository defines the persistence operations for profiles.
// Profiles are read-mostly here; ratings and counters are written by the
// ratings subsystem.
type ProfileRepository interface {
	// GetByID retrieves a profile by ID.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)

	// CommunityStats aggregates environmental figures across all profiles.
	CommunityStats(ctx context.Context) (*domain.CommunityStats, error)
}
