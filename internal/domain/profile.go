package domain

import "time"

// Profile represents a community member. Ratings and aggregate counters are
// maintained by the ratings subsystem; this service reads them.
type Profile struct {
	ID                    string
	Name                  string
	Rating                float64
	TotalRidesAsDriver    int
	TotalRidesAsPassenger int
	TotalCO2SavedKg       float64
	CreatedAt             time.Time
}

// CommunityStats holds the aggregate environmental figures shown on the landing page.
type CommunityStats struct {
	TotalCO2SavedKg float64
	TotalKmShared   float64
	TotalMembers    int
}
