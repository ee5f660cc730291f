package events

import (
	"context"
	"encoding/json"
	"time"

	"estudio/internal/domain"

	"github.com/rs/zerolog"
)

// Stream topics exposed to realtime subscribers.
const (
	TopicBookings = "bookings"
	TopicMessages = "messages"
	TopicRadio    = "radio"
)

const streamPublishTimeout = 5 * time.Second

// AttachStream forwards domain events from the bus onto the realtime
// stream, grouped by topic. Stream failures are logged and dropped so event
// publishing never blocks the write path.
func AttachStream(bus *EventBus, stream domain.EventStream, logger *zerolog.Logger) {
	forward := func(topic string) EventHandler {
		return func(event *Event) error {
			envelope, err := json.Marshal(map[string]any{
				"type":    event.Type,
				"payload": json.RawMessage(event.Payload),
			})
			if err != nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), streamPublishTimeout)
			defer cancel()
			if err := stream.Publish(ctx, topic, envelope); err != nil {
				logger.Warn().Err(err).Str("topic", topic).Str("event", event.Type).Msg("failed to forward event to stream")
			}
			return nil
		}
	}

	bus.Subscribe(EventBookingCreated, forward(TopicBookings))
	bus.Subscribe(EventBookingUpdated, forward(TopicBookings))
	bus.Subscribe(EventBookingDeleted, forward(TopicBookings))
	bus.Subscribe(EventMessageCreated, forward(TopicMessages))
	bus.Subscribe(EventRadioLiveChanged, forward(TopicRadio))
	bus.Subscribe(EventLoopTrackChanged, forward(TopicRadio))
}
