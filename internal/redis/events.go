package redis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"carpool/internal/relay"
)

// bookingEventChannel is the pub/sub channel booking changes are fed through.
const bookingEventChannel = "events:bookings"

// EventFeed implements relay.Feed over Redis pub/sub. Pub/sub gives exactly
// the delivery the notification layer wants: fan-out to live subscribers,
// nothing retained for absent ones.
type EventFeed struct {
	client *redis.Client
}

// NewEventFeed creates a new EventFeed.
func NewEventFeed(client *redis.Client) *EventFeed {
	return &EventFeed{client: client}
}

// Publish emits a booking event to all current subscribers.
func (f *EventFeed) Publish(ctx context.Context, event relay.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, bookingEventChannel, data).Err()
}

// Subscribe opens a pub/sub subscription and decodes incoming messages. The
// returned stop function closes the subscription; the event channel closes
// once the underlying subscription drains.
func (f *EventFeed) Subscribe(ctx context.Context) (<-chan relay.BookingEvent, func() error, error) {
	sub := f.client.Subscribe(ctx, bookingEventChannel)

	// Force the subscription to be established before we return.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	events := make(chan relay.BookingEvent)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event relay.BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("event feed: bad payload: %v", err)
				continue
			}
			events <- event
		}
	}()

	return events, sub.Close, nil
}

// Ensure EventFeed implements relay.Feed.
var _ relay.Feed = (*EventFeed)(nil)
