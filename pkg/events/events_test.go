package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe("test")

	bus.Publish(TypeGenerationStarted, map[string]string{"topic": "x"})

	select {
	case event := <-ch:
		assert.Equal(t, TypeGenerationStarted, event.Type)
		assert.NotEmpty(t, event.ID)
		assert.WithinDuration(t, time.Now(), event.Timestamp, time.Second)
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe("test")
	bus.Unsubscribe("test")

	_, open := <-ch
	assert.False(t, open)
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("slow")

	// Publishing past the buffer size must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			bus.Publish(TypeError, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe("a")
	b := bus.Subscribe("b")

	bus.Publish(TypeWriteCompleted, nil)

	require.Equal(t, TypeWriteCompleted, (<-a).Type)
	require.Equal(t, TypeWriteCompleted, (<-b).Type)
}
