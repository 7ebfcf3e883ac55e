// Package messaging publishes JSON events over Redis pub/sub.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher sends events to a channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Message is a received event.
type Message struct {
	Channel string
	Payload []byte
	Time    time.Time
}

type redisPublisher struct {
	client *redis.Client
	owned  bool
}

// NewRedisPublisher dials Redis and verifies the connection.
func NewRedisPublisher(addr, password string, db int) (Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisPublisher{client: client, owned: true}, nil
}

// NewPublisherFromClient reuses an existing connection. Close is a no-op so
// the owner keeps control of the client lifecycle.
func NewPublisherFromClient(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (r *redisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return nil
}

func (r *redisPublisher) Close() error {
	if !r.owned {
		return nil
	}
	return r.client.Close()
}

// Subscribe streams messages from channel until ctx is done.
func Subscribe(ctx context.Context, client *redis.Client, channel string) (<-chan Message, error) {
	pubsub := client.Subscribe(ctx, channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	messageCh := make(chan Message)
	go func() {
		defer close(messageCh)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case messageCh <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload), Time: time.Now()}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return messageCh, nil
}

type logPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher writes events to logger instead of a broker.
func NewLogPublisher(logger *zap.Logger) Publisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(_ context.Context, channel string, message interface{}) error {
	p.logger.Debug("Event", zap.String("channel", channel), zap.Any("message", message))
	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
