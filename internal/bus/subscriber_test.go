package bus

import (
	"fmt"
	"testing"
	"time"
)

func TestSubscriber_EnqueuePreservesOrder(t *testing.T) {
	s := NewSubscriber(nil, "chatter", 1, 4)

	for i := 0; i < 4; i++ {
		ok := s.enqueue(Message{Payload: []byte(fmt.Sprintf("msg-%d", i)), Received: time.Now()})
		if !ok {
			t.Fatalf("enqueue %d rejected with free capacity", i)
		}
	}

	for i := 0; i < 4; i++ {
		got := <-s.Messages()
		want := fmt.Sprintf("msg-%d", i)
		if string(got.Payload) != want {
			t.Errorf("message %d = %q, want %q", i, got.Payload, want)
		}
	}
}

func TestSubscriber_EnqueueDropsWhenFull(t *testing.T) {
	s := NewSubscriber(nil, "chatter", 1, 2)

	if !s.enqueue(Message{Payload: []byte("a")}) || !s.enqueue(Message{Payload: []byte("b")}) {
		t.Fatal("enqueue rejected within capacity")
	}
	if s.enqueue(Message{Payload: []byte("c")}) {
		t.Error("enqueue accepted beyond capacity")
	}
	if s.enqueue(Message{Payload: []byte("d")}) {
		t.Error("enqueue accepted beyond capacity")
	}
	if got := s.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, want 2", got)
	}

	// Accepted messages are still intact and ordered.
	if got := <-s.Messages(); string(got.Payload) != "a" {
		t.Errorf("first message = %q, want a", got.Payload)
	}
	if got := <-s.Messages(); string(got.Payload) != "b" {
		t.Errorf("second message = %q, want b", got.Payload)
	}

	// Capacity freed: accepting again.
	if !s.enqueue(Message{Payload: []byte("e")}) {
		t.Error("enqueue rejected after drain")
	}
}

func TestSubscriber_EnqueueAfterCloseIsDropped(t *testing.T) {
	s := NewSubscriber(nil, "chatter", 1, 2)

	if !s.enqueue(Message{Payload: []byte("a")}) {
		t.Fatal("enqueue rejected within capacity")
	}
	s.closeQueue()

	// The client dispatcher can deliver after the queue closed; the message
	// must be dropped, not sent on the closed channel.
	if s.enqueue(Message{Payload: []byte("late")}) {
		t.Error("enqueue accepted after close")
	}
	if got := s.Dropped(); got != 1 {
		t.Errorf("Dropped() = %d, want 1", got)
	}

	// Closing again is a no-op.
	s.closeQueue()

	// Messages accepted before the close still drain, then the channel ends.
	if got, ok := <-s.Messages(); !ok || string(got.Payload) != "a" {
		t.Errorf("drained message = %q ok=%v, want a", got.Payload, ok)
	}
	if _, ok := <-s.Messages(); ok {
		t.Error("channel still open after close and drain")
	}
}
