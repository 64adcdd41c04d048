package ws

import (
	"testing"
	"time"
)

type chanSubscriber struct {
	received chan []byte
	closed   bool
}

func (s *chanSubscriber) Send(payload []byte) error {
	s.received <- payload
	return nil
}

func (s *chanSubscriber) Close() { s.closed = true }

func TestBroadcastReachesOnlyOwnersClients(t *testing.T) {
	hub := NewHub()
	mine := &chanSubscriber{received: make(chan []byte, 1)}
	theirs := &chanSubscriber{received: make(chan []byte, 1)}
	hub.Register("user-a", mine)
	hub.Register("user-b", theirs)

	hub.Broadcast("user-a", []byte("hello"))

	select {
	case payload := <-mine.received:
		if string(payload) != "hello" {
			t.Fatalf("unexpected payload: %s", payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected broadcast delivery to user-a")
	}
	select {
	case payload := <-theirs.received:
		t.Fatalf("user-b should not receive user-a events, got %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := &chanSubscriber{received: make(chan []byte, 1)}
	hub.Register("user-a", sub)
	hub.Unregister("user-a", sub)

	hub.Broadcast("user-a", []byte("after"))

	select {
	case payload := <-sub.received:
		t.Fatalf("unexpected delivery after unregister: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}
