// Package route talks to an external directions provider and turns a pair of
// coordinates into distance, duration and an encoded path.
package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// ErrNoRoute is returned when the provider cannot connect the two points.
var ErrNoRoute = errors.New("no route between coordinates")

// Coordinate is a WGS84 lat/lng pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Estimate is the provider's answer for one origin/destination pair.
type Estimate struct {
	DistanceKm      float64
	DurationMinutes float64
	Polyline        string
}

// Estimator is the interface trip posting and the estimate endpoint consume.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination Coordinate) (*Estimate, error)
}

// OSRMClient performs route lookups against an OSRM-compatible HTTP server.
type OSRMClient struct {
	endpoint string
	client   *http.Client
}

// NewOSRMClient creates a client for the given OSRM endpoint.
func NewOSRMClient(endpoint string) *OSRMClient {
	return &OSRMClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Estimate queries /route/v1/driving between the points. OSRM takes lng,lat
// order and returns distance in meters and duration in seconds.
func (o *OSRMClient) Estimate(ctx context.Context, origin, destination Coordinate) (*Estimate, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=polyline",
		o.endpoint, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions provider returned status %d", resp.StatusCode)
	}

	var out struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Geometry string  `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if out.Code != "Ok" || len(out.Routes) == 0 {
		return nil, ErrNoRoute
	}

	best := out.Routes[0]
	return &Estimate{
		DistanceKm:      best.Distance / 1000,
		DurationMinutes: best.Duration / 60,
		Polyline:        best.Geometry,
	}, nil
}

// SuggestFuelCost derives the fuel-cost suggestion shown to the driver at
// trip creation. The driver may override it.
func SuggestFuelCost(distanceKm, ratePerKm float64) float64 {
	return math.Round(distanceKm * ratePerKm)
}

// Ensure OSRMClient implements Estimator.
var _ Estimator = (*OSRMClient)(nil)
