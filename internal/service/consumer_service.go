package service

import (
	"context"

	"simple-note/internal/pkg/logger"
	"simple-note/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventSink receives every note event after it leaves the in-process bus.
// The NATS publisher and the websocket hub both satisfy it.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	sinks      []EventSink
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	logger logger.ILogger,
	sinks ...EventSink,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sinks:      sinks,
		logger:     logger,
	}
}

// Consume subscribes and processes messages in the background until ctx is
// cancelled or the bus is closed.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// Sink failures are logged and the message is still acked; a redelivery
// would hand the event to the sinks that already succeeded.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("ConsumerService", "Dropping undecodable message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		msg.Ack()
		return
	}

	for _, sink := range cs.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward event", map[string]interface{}{
				"event_id":   event.EventID(),
				"event_type": event.EventType(),
				"error":      err,
			})
		}
	}

	cs.logger.Debug("ConsumerService", "Event forwarded", map[string]interface{}{
		"event_id":   event.EventID(),
		"event_type": event.EventType(),
		"sinks":      len(cs.sinks),
	})
	msg.Ack()
}
