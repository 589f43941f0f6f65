package service

import (
	"context"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// ProfileService exposes member profiles and community aggregates.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile returns a member's public profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.profileRepo.GetByID(ctx, userID)
}

// CommunityStats returns the community-wide environmental aggregates.
func (s *ProfileService) CommunityStats(ctx context.Context) (*domain.CommunityStats, error) {
	return s.profileRepo.CommunityStats(ctx)
}
