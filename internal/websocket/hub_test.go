package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(h *Hub, userID uint) *Client {
	return &Client{
		hub:       h,
		send:      make(chan []byte, 16),
		UserID:    userID,
		SessionID: "test",
	}
}

// waitForClients blocks until the hub's run loop has processed enough
// register/unregister requests to reach the expected session counts.
func waitForClients(t *testing.T, hub *Hub, userID uint, userSessions, totalClients int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		sessions := len(hub.users[userID])
		total := len(hub.clients)
		hub.mu.RUnlock()
		if sessions == userSessions && total == totalClients {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Hub did not reach %d sessions for user %d / %d clients in time", userSessions, userID, totalClients)
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("Invalid event JSON: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
		return Event{}
	}
}

func TestHubSendToUserReachesAllSessions(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Same user connected twice, another user once
	a1 := newTestClient(hub, 7)
	a2 := newTestClient(hub, 7)
	b := newTestClient(hub, 8)
	hub.register <- a1
	hub.register <- a2
	hub.register <- b
	waitForClients(t, hub, 7, 2, 3)

	if !hub.SendToUser(7, "nouvelle_notification", map[string]string{"titre": "test"}) {
		t.Fatal("Expected delivery to a connected user")
	}

	for _, c := range []*Client{a1, a2} {
		ev := recvEvent(t, c)
		if ev.Event != "nouvelle_notification" {
			t.Errorf("Expected nouvelle_notification, got %q", ev.Event)
		}
	}

	select {
	case <-b.send:
		t.Error("User 8 should not receive user 7 events")
	default:
	}
}

func TestHubSendToOfflineUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	if hub.SendToUser(99, "nouvelle_notification", nil) {
		t.Error("Delivery to an offline user should report false")
	}
}

func TestHubPerSessionOrdering(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, 5)
	hub.register <- c
	waitForClients(t, hub, 5, 1, 1)

	for i := 0; i < 5; i++ {
		hub.SendToUser(5, "update_unread_count", i)
	}

	for i := 0; i < 5; i++ {
		ev := recvEvent(t, c)
		if int(ev.Data.(float64)) != i {
			t.Fatalf("Events out of order: expected %d, got %v", i, ev.Data)
		}
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := newTestClient(hub, 3)
	c2 := newTestClient(hub, 3)
	hub.register <- c1
	hub.register <- c2
	waitForClients(t, hub, 3, 2, 2)

	hub.unregister <- c1
	hub.unregister <- c1
	waitForClients(t, hub, 3, 1, 1)

	// The remaining session still receives events
	if !hub.SendToUser(3, "update_unread_count", 1) {
		t.Error("Second session should still be registered")
	}
	ev := recvEvent(t, c2)
	if ev.Event != "update_unread_count" {
		t.Errorf("Expected update_unread_count, got %q", ev.Event)
	}

	hub.unregister <- c2
	waitForClients(t, hub, 3, 0, 0)
	if hub.SendToUser(3, "update_unread_count", 2) {
		t.Error("No session left, delivery should report false")
	}
}

// Sessions disconnecting while a publish is in flight must never crash the
// sender: the unregister branch closes the send channel, so a send racing
// it would panic on a closed channel.
func TestHubSendDuringConnectionChurn(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	const userID = 11
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			c := newTestClient(hub, userID)
			hub.register <- c
			hub.unregister <- c
		}
	}()

	for {
		select {
		case <-done:
			waitForClients(t, hub, userID, 0, 0)
			if hub.SendToUser(userID, "update_unread_count", 0) {
				t.Error("All sessions gone, delivery should report false")
			}
			return
		default:
			hub.SendToUser(userID, "nouvelle_notification", map[string]string{"titre": "churn"})
			hub.Broadcast("update_unread_count", 0)
		}
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	identified := newTestClient(hub, 4)
	anonymous := newTestClient(hub, 0)
	hub.register <- identified
	hub.register <- anonymous
	waitForClients(t, hub, 4, 1, 2)

	hub.Broadcast("nouvelle_notification", map[string]string{"titre": "global"})

	for _, c := range []*Client{identified, anonymous} {
		ev := recvEvent(t, c)
		if ev.Event != "nouvelle_notification" {
			t.Errorf("Expected broadcast event, got %q", ev.Event)
		}
	}
}
