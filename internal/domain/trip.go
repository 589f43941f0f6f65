package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusOpen      TripStatus = "open"
	TripStatusClosed    TripStatus = "closed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip represents a driver-posted journey offer with fixed seat capacity.
type Trip struct {
	ID                string
	DriverID          string
	VehicleID         string
	StartLocation     string
	EndLocation       string
	StartLat          float64
	StartLng          float64
	EndLat            float64
	EndLng            float64
	RoutePolyline     string  // Encoded path from the directions provider, may be empty.
	TotalDistanceKm   float64 // 0 when the route was never estimated.
	DepartureTime     time.Time
	SeatsTotal        int // Fixed at creation.
	SeatsAvailable    int // Decremented only when a booking is confirmed.
	EstimatedFuelCost float64
	Status            TripStatus
	CreatedAt         time.Time
}
