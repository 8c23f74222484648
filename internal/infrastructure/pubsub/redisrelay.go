package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vigil/internal/shared/goroutine"
	"vigil/internal/shared/logger"
)

const changeChannel = "vigil:changes"

// changeMessage is the cross-instance wire form of a change. Change IDs are
// process-local and never cross the wire; each instance assigns its own.
type changeMessage struct {
	EventID uint   `json:"event_id"`
	Kind    string `json:"kind"`
	Number  int    `json:"number"`
	// InstanceID is the source instance, used to avoid self-delivery.
	InstanceID string `json:"instance_id"`
}

// RedisRelay relays changes between instances over Redis Pub/Sub.
type RedisRelay struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisRelay(client *redis.Client, log logger.Interface) *RedisRelay {
	return &RedisRelay{
		client:     client,
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

func (r *RedisRelay) PublishChange(ctx context.Context, eventID uint, kind string, number int) error {
	msg := changeMessage{
		EventID:    eventID,
		Kind:       kind,
		Number:     number,
		InstanceID: r.instanceID,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal change message: %w", err)
	}

	if err := r.client.Publish(ctx, changeChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}

	r.logger.Debugw("change published to Redis",
		"event_id", eventID, "kind", kind, "number", number)
	return nil
}

// SubscribeChanges subscribes to changes from other instances. Messages
// published by this instance are filtered out.
func (r *RedisRelay) SubscribeChanges(ctx context.Context, handler func(eventID uint, kind string, number int)) error {
	return r.subscribeWithReconnect(ctx, changeChannel, func(payload string) {
		var msg changeMessage
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			r.logger.Warnw("failed to unmarshal change message",
				"payload", payload, "error", err)
			return
		}

		if msg.InstanceID == r.instanceID {
			return
		}

		handler(msg.EventID, msg.Kind, msg.Number)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and
// exponential backoff.
func (r *RedisRelay) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := r.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		r.logger.Warnw("change subscription disconnected, reconnecting",
			"channel", channel, "error", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (r *RedisRelay) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := r.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	r.logger.Infow("subscribed to change channel", "channel", channel)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("change subscriber stopped",
				"channel", channel, "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				r.logger.Warnw("change channel closed", "channel", channel)
				return nil
			}

			goroutine.SafeGo(r.logger, "change-message-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
