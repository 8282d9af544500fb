package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"songvault/pkg/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	CACHE_INVALIDATION_CHANNEL Channel = "cache.invalidation"
)

type MessageType string

const (
	CACHE_INVALIDATION MessageType = "cache_invalidation"
)

type Event struct {
	ID        string         `json:"id"`
	Type      MessageType    `json:"type"`
	Channel   Channel        `json:"channel"`
	Origin    string         `json:"origin"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// EventBus fans events out to handlers in this process and, when a valkey
// client is present, to every other process subscribed to the same channel.
// Events that come back from valkey with this bus's origin are dropped since
// local handlers have already seen them.
type EventBus struct {
	client    valkey.Client
	logger    logger.Logger
	origin    string
	handlers  map[Channel][]EventHandler
	listening map[Channel]bool
	mutex     sync.RWMutex
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(client valkey.Client) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:    client,
		logger:    logger.New("EventBus"),
		origin:    uuid.New().String(),
		handlers:  make(map[Channel][]EventHandler),
		listening: make(map[Channel]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (eb *EventBus) Origin() string {
	return eb.origin
}

func (eb *EventBus) Publish(ctx context.Context, channel Channel, event Event) error {
	log := eb.logger.TraceFromContext(ctx).Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Channel == "" {
		event.Channel = channel
	}
	if event.Origin == "" {
		event.Origin = eb.origin
	}

	if eb.client != nil {
		eventData, err := json.Marshal(event)
		if err != nil {
			return log.Err("failed to marshal event", err, "eventID", event.ID)
		}

		publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err = eb.client.Do(
			publishCtx,
			eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build(),
		).Error()
		if err != nil {
			return log.Err("failed to publish event to valkey", err, "channel", channel, "eventID", event.ID)
		}
	}

	log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)
	eb.notifyLocalHandlers(channel, event)

	return nil
}

func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) {
	log := eb.logger.Function("Subscribe")

	eb.mutex.Lock()
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	startListener := eb.client != nil && !eb.listening[channel]
	eb.listening[channel] = true
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	if startListener {
		go eb.listenToChannel(channel)
	}
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.logger.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := append([]EventHandler(nil), eb.handlers[channel]...)
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		eb.wg.Add(1)
		go func(h EventHandler, handlerIndex int) {
			defer eb.wg.Done()
			if err := h(event); err != nil {
				log.Er("handler failed", err, "channel", channel, "eventID", event.ID, "handlerIndex", handlerIndex)
			}
		}(handler, i)
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.logger.Function("listenToChannel")

	log.Info("Starting to listen to channel", "channel", channel)

	err := eb.client.Receive(
		eb.ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel)
				return
			}

			if event.Origin == eb.origin {
				return
			}

			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil && eb.ctx.Err() == nil {
		log.Er("failed to listen to channel", err, "channel", channel)
	}
}

// Wait blocks until every handler started so far has returned
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}

func (eb *EventBus) Close() error {
	eb.cancel()
	eb.wg.Wait()

	eb.logger.Function("Close").Info("EventBus closed")
	return nil
}

func (eb *EventBus) PublishCacheInvalidation(ctx context.Context, resourceType string, resourceID int) error {
	return eb.Publish(ctx, CACHE_INVALIDATION_CHANNEL, Event{
		Type: CACHE_INVALIDATION,
		Data: map[string]any{
			"resourceType": resourceType,
			"resourceId":   resourceID,
		},
	})
}
