package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// chanFeed is an in-memory Feed for tests.
type chanFeed struct {
	events chan BookingEvent
}

func newChanFeed() *chanFeed {
	return &chanFeed{events: make(chan BookingEvent, 8)}
}

func (f *chanFeed) Publish(ctx context.Context, event BookingEvent) error {
	f.events <- event
	return nil
}

func (f *chanFeed) Subscribe(ctx context.Context) (<-chan BookingEvent, func() error, error) {
	return f.events, func() error { return nil }, nil
}

func TestBuildNotification(t *testing.T) {
	t.Parallel()

	base := BookingEvent{
		BookingID:      "booking-1",
		TripID:         "trip-1",
		DriverID:       "driver-1",
		PassengerID:    "passenger-1",
		SeatsRequested: 2,
		StartLocation:  "Indiranagar",
		EndLocation:    "Whitefield",
	}

	testCases := []struct {
		name          string
		mutate        func(e *BookingEvent)
		wantRecipient string
		wantTitle     string
		wantInMessage string
	}{
		{
			name:          "request goes to driver with passenger name",
			mutate:        func(e *BookingEvent) { e.Kind = KindBookingRequested; e.PassengerName = "Asha" },
			wantRecipient: "driver-1",
			wantTitle:     "New Booking Request",
			wantInMessage: "Asha wants to join your ride from Indiranagar to Whitefield",
		},
		{
			name:          "request without name falls back",
			mutate:        func(e *BookingEvent) { e.Kind = KindBookingRequested },
			wantRecipient: "driver-1",
			wantTitle:     "New Booking Request",
			wantInMessage: "A passenger wants to join",
		},
		{
			name:          "confirmation goes to passenger",
			mutate:        func(e *BookingEvent) { e.Kind = KindBookingConfirmed },
			wantRecipient: "passenger-1",
			wantTitle:     "Booking Confirmed",
			wantInMessage: "accepted by the driver",
		},
		{
			name:          "rejection goes to passenger",
			mutate:        func(e *BookingEvent) { e.Kind = KindBookingRejected },
			wantRecipient: "passenger-1",
			wantTitle:     "Booking Rejected",
			wantInMessage: "declined",
		},
		{
			name:          "withdrawal goes to driver",
			mutate:        func(e *BookingEvent) { e.Kind = KindBookingWithdrawn },
			wantRecipient: "driver-1",
			wantTitle:     "Booking Withdrawn",
			wantInMessage: "2 seat(s)",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			event := base
			tc.mutate(&event)

			n, recipient := buildNotification(event)
			if recipient != tc.wantRecipient {
				t.Errorf("expected recipient %s, got %s", tc.wantRecipient, recipient)
			}
			if n.Title != tc.wantTitle {
				t.Errorf("expected title %q, got %q", tc.wantTitle, n.Title)
			}
			if !strings.Contains(n.Message, tc.wantInMessage) {
				t.Errorf("expected message to contain %q, got %q", tc.wantInMessage, n.Message)
			}
			if n.Data["booking_id"] != "booking-1" {
				t.Errorf("expected booking_id in data, got %+v", n.Data)
			}
		})
	}

	t.Run("unknown kind has no recipient", func(t *testing.T) {
		t.Parallel()

		event := base
		event.Kind = "SOMETHING_ELSE"
		if _, recipient := buildNotification(event); recipient != "" {
			t.Errorf("expected no recipient, got %s", recipient)
		}
	})
}

func TestRegistry_SendWithoutSession(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Send("nobody", Notification{}); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got: %v", err)
	}
}

func TestRelay_DeliversToConnectedClient(t *testing.T) {
	registry := NewRegistry()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		registry.Add("passenger-1", conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	feed := newChanFeed()
	r := NewRelay(feed, registry)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	if err := feed.Publish(ctx, BookingEvent{
		Kind:        KindBookingConfirmed,
		BookingID:   "booking-1",
		TripID:      "trip-1",
		PassengerID: "passenger-1",
	}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n Notification
	if err := client.ReadJSON(&n); err != nil {
		t.Fatalf("expected a notification, got: %v", err)
	}

	if n.Type != KindBookingConfirmed || n.RecipientID != "passenger-1" {
		t.Errorf("unexpected notification: %+v", n)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop on context cancellation")
	}
}

func TestRegistry_ReconnectReplacesSession(t *testing.T) {
	registry := NewRegistry()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer first.Close()
	registry.Add("user-1", <-conns)

	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer second.Close()
	secondServerConn := <-conns
	registry.Add("user-1", secondServerConn)

	if err := registry.Send("user-1", Notification{Type: KindBookingConfirmed}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n Notification
	if err := second.ReadJSON(&n); err != nil {
		t.Fatalf("expected the new session to receive, got: %v", err)
	}

	// Removing with a stale conn pointer leaves the live session alone.
	registry.Remove("user-1", nil)
	if err := registry.Send("user-1", Notification{}); err != nil {
		t.Errorf("expected live session to survive stale remove, got: %v", err)
	}

	registry.Remove("user-1", secondServerConn)
	if err := registry.Send("user-1", Notification{}); err != ErrNoSession {
		t.Errorf("expected ErrNoSession after removal, got: %v", err)
	}
}
