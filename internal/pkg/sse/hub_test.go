package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-1", Event{EmployeeID: "emp-1", Name: "attendance_checked_in", Data: "payload"})

	select {
	case event := <-ch:
		assert.Equal(t, "attendance_checked_in", event.Name)
		assert.Equal(t, "payload", event.Data)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PublishScopedToEmployee(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	hub.Publish("emp-2", Event{EmployeeID: "emp-2", Name: "overtime_approved"})

	select {
	case <-ch:
		t.Fatal("event for another employee must not be delivered")
	default:
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("emp-1")
	require.Equal(t, 1, hub.SubscriberCount("emp-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("emp-1"))
}

func TestHub_FullChannelDoesNotBlockPublisher(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	// Overflow the buffer; Publish must drop rather than block.
	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("emp-1", Event{EmployeeID: "emp-1", Name: "ping"})
	}

	assert.Equal(t, cap(ch), len(ch))
}
