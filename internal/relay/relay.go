package relay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Notification is what a connected client receives. This is a UX convenience
// layer, not a messaging system: no retry, no durable queue.
type Notification struct {
	Type        Kind           `json:"type"`
	RecipientID string         `json:"recipient_id"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Relay consumes booking events from the feed and surfaces them to the
// affected party: the driver for new requests and withdrawals, the passenger
// for confirmations and rejections.
type Relay struct {
	feed     Feed
	registry *Registry
}

// NewRelay creates a relay over the given feed and session registry.
func NewRelay(feed Feed, registry *Registry) *Relay {
	return &Relay{feed: feed, registry: registry}
}

// Registry exposes the session registry for the WebSocket handler.
func (r *Relay) Registry() *Registry {
	return r.registry
}

// Run consumes the feed until the context is cancelled. It blocks, so run it
// in its own goroutine.
func (r *Relay) Run(ctx context.Context) error {
	events, stop, err := r.feed.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			log.Printf("relay: subscription teardown: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			r.dispatch(event)
		}
	}
}

func (r *Relay) dispatch(event BookingEvent) {
	notification, recipientID := buildNotification(event)
	if recipientID == "" {
		return
	}

	if err := r.registry.Send(recipientID, notification); err != nil {
		if errors.Is(err, ErrNoSession) {
			// Recipient is offline; nothing to deliver.
			return
		}
		log.Printf("relay: deliver %s to %s: %v", event.Kind, recipientID, err)
	}
}

func buildNotification(event BookingEvent) (Notification, string) {
	n := Notification{
		Type:      event.Kind,
		CreatedAt: time.Now(),
		Data: map[string]any{
			"booking_id":      event.BookingID,
			"trip_id":         event.TripID,
			"seats_requested": event.SeatsRequested,
		},
	}

	switch event.Kind {
	case KindBookingRequested:
		name := event.PassengerName
		if name == "" {
			name = "A passenger"
		}
		n.RecipientID = event.DriverID
		n.Title = "New Booking Request"
		n.Message = fmt.Sprintf("%s wants to join your ride from %s to %s",
			name, event.StartLocation, event.EndLocation)

	case KindBookingConfirmed:
		n.RecipientID = event.PassengerID
		n.Title = "Booking Confirmed"
		n.Message = "Your ride request has been accepted by the driver"

	case KindBookingRejected:
		n.RecipientID = event.PassengerID
		n.Title = "Booking Rejected"
		n.Message = "Your ride request was declined"

	case KindBookingWithdrawn:
		n.RecipientID = event.DriverID
		n.Title = "Booking Withdrawn"
		n.Message = fmt.Sprintf("A passenger withdrew their request for %d seat(s)", event.SeatsRequested)

	default:
		return Notification{}, ""
	}

	return n, n.RecipientID
}
