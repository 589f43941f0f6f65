package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carpool/internal/service"
)

// ProfileHandler handles HTTP requests for member profiles and community stats.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileResponse is the HTTP response for a member profile.
type ProfileResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Rating                float64 `json:"rating"`
	TotalRidesAsDriver    int     `json:"total_rides_as_driver"`
	TotalRidesAsPassenger int     `json:"total_rides_as_passenger"`
	TotalCO2SavedKg       float64 `json:"total_co2_saved_kg"`
	MemberSince           string  `json:"member_since"`
}

// CommunityStatsResponse is the HTTP response for community aggregates.
type CommunityStatsResponse struct {
	TotalCO2SavedKg float64 `json:"total_co2_saved_kg"`
	TotalKmShared   float64 `json:"total_km_shared"`
	TotalMembers    int     `json:"total_members"`
}

// GetProfile handles GET /v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ProfileResponse{
		ID:                    profile.ID,
		Name:                  profile.Name,
		Rating:                profile.Rating,
		TotalRidesAsDriver:    profile.TotalRidesAsDriver,
		TotalRidesAsPassenger: profile.TotalRidesAsPassenger,
		TotalCO2SavedKg:       profile.TotalCO2SavedKg,
		MemberSince:           profile.CreatedAt.Format(time.RFC3339),
	})
}

// CommunityStats handles GET /v1/stats
func (h *ProfileHandler) CommunityStats(c *gin.Context) {
	stats, err := h.profileService.CommunityStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CommunityStatsResponse{
		TotalCO2SavedKg: stats.TotalCO2SavedKg,
		TotalKmShared:   stats.TotalKmShared,
		TotalMembers:    stats.TotalMembers,
	})
}
