package route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOSRMClient_Estimate(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"code": "Ok",
			"routes": [{"distance": 18200.0, "duration": 2520.0, "geometry": "encoded_path"}]
		}`)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	estimate, err := client.Estimate(context.Background(),
		Coordinate{Lat: 12.9719, Lng: 77.6412},
		Coordinate{Lat: 12.9698, Lng: 77.7499},
	)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if estimate.DistanceKm != 18.2 {
		t.Errorf("expected 18.2 km, got %v", estimate.DistanceKm)
	}
	if estimate.DurationMinutes != 42 {
		t.Errorf("expected 42 minutes, got %v", estimate.DurationMinutes)
	}
	if estimate.Polyline != "encoded_path" {
		t.Errorf("expected geometry to be returned, got %q", estimate.Polyline)
	}

	// OSRM takes lng,lat order.
	if !strings.HasPrefix(gotPath, "/route/v1/driving/77.641200,12.971900;") {
		t.Errorf("expected lng,lat coordinate order in path, got %s", gotPath)
	}
}

func TestOSRMClient_NoRoute(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": "NoRoute", "routes": []}`)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	_, err := client.Estimate(context.Background(), Coordinate{Lat: 1, Lng: 1}, Coordinate{Lat: 2, Lng: 2})
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got: %v", err)
	}
}

func TestOSRMClient_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	_, err := client.Estimate(context.Background(), Coordinate{Lat: 1, Lng: 1}, Coordinate{Lat: 2, Lng: 2})
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCoordinateValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		coord Coordinate
		want  bool
	}{
		{"origin", Coordinate{}, true},
		{"bounds", Coordinate{Lat: 90, Lng: -180}, true},
		{"latitude too high", Coordinate{Lat: 90.1}, false},
		{"longitude too low", Coordinate{Lng: -180.5}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.coord.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSuggestFuelCost(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		distanceKm float64
		rate       float64
		want       float64
	}{
		{120.4, 8, 963},
		{10, 8, 80},
		{0, 8, 0},
		{7.56, 8, 60},
	}

	for _, tc := range testCases {
		if got := SuggestFuelCost(tc.distanceKm, tc.rate); got != tc.want {
			t.Errorf("SuggestFuelCost(%v, %v) = %v, want %v", tc.distanceKm, tc.rate, got, tc.want)
		}
	}
}
