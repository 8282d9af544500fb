package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_WithoutClientNotifiesLocalHandlers(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var mu sync.Mutex
	var received []Event
	bus.Subscribe(CACHE_INVALIDATION_CHANNEL, func(event Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	require.NoError(t, bus.PublishCacheInvalidation(context.Background(), "genres", 4))
	bus.Wait()

	require.Len(t, received, 1)
	event := received[0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, CACHE_INVALIDATION, event.Type)
	assert.Equal(t, CACHE_INVALIDATION_CHANNEL, event.Channel)
	assert.Equal(t, bus.Origin(), event.Origin)
	assert.Equal(t, "genres", event.Data["resourceType"])
	assert.Equal(t, 4, event.Data["resourceId"])
	assert.False(t, event.Timestamp.IsZero())
}

func TestPublish_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	bus.Subscribe(CACHE_INVALIDATION_CHANNEL, func(Event) error {
		return errors.New("handler broke")
	})

	assert.NoError(t, bus.Publish(context.Background(), CACHE_INVALIDATION_CHANNEL, Event{Type: CACHE_INVALIDATION}))
	bus.Wait()
}

func TestPublish_OtherChannelsIgnored(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	called := false
	bus.Subscribe(Channel("other"), func(Event) error {
		called = true
		return nil
	})

	require.NoError(t, bus.PublishCacheInvalidation(context.Background(), "artists", 1))
	bus.Wait()

	assert.False(t, called)
}
