package relay

import (
	"context"
	"time"
)

// Kind identifies what happened to a booking.
type Kind string

const (
	KindBookingRequested Kind = "BOOKING_REQUESTED"
	KindBookingConfirmed Kind = "BOOKING_CONFIRMED"
	KindBookingRejected  Kind = "BOOKING_REJECTED"
	KindBookingWithdrawn Kind = "BOOKING_WITHDRAWN"
)

// BookingEvent describes a booking insert or status change. Events carry
// everything the relay needs to phrase a notification so delivery never has
// to read the store.
type BookingEvent struct {
	Kind           Kind      `json:"kind"`
	BookingID      string    `json:"booking_id"`
	TripID         string    `json:"trip_id"`
	DriverID       string    `json:"driver_id"`
	PassengerID    string    `json:"passenger_id"`
	PassengerName  string    `json:"passenger_name,omitempty"`
	SeatsRequested int       `json:"seats_requested"`
	StartLocation  string    `json:"start_location"`
	EndLocation    string    `json:"end_location"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Feed is the change-notification transport between the booking service and
// the relay. Deliveries are best-effort and at-most-once; there is no durable
// queue behind a Feed and a missed event is not recoverable.
type Feed interface {
	// Publish emits an event to all current subscribers.
	Publish(ctx context.Context, event BookingEvent) error

	// Subscribe returns a channel of events. The returned stop function must
	// be called when the subscriber is done, to tear the subscription down.
	Subscribe(ctx context.Context) (<-chan BookingEvent, func() error, error)
}
