package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Active reports whether the status provisionally or firmly holds seats.
// Pending requests count against capacity so passengers cannot over-subscribe
// a trip before the driver reviews their requests.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking represents a passenger's request to occupy seats on a trip.
type Booking struct {
	ID               string
	TripID           string
	PassengerID      string
	SeatsRequested   int
	PickupLocation   string
	PickupLat        float64
	PickupLng        float64
	DropLocation     string
	DropLat          float64
	DropLng          float64
	Status           BookingStatus
	CostContribution float64 // Optional, settled between driver and passenger.
	CreatedAt        time.Time
}
