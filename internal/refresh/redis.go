package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "freshmart:refresh:"

// RedisTransport carries refresh signals over Redis pub/sub. This is the
// primary transport when REDIS_URL is configured.
type RedisTransport struct {
	client *redis.Client

	mu      sync.Mutex
	cancels []context.CancelFunc
}

// NewRedisTransport connects to redisURL and verifies the connection.
func NewRedisTransport(redisURL string) (*RedisTransport, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisTransport{client: client}, nil
}

func (t *RedisTransport) Publish(ctx context.Context, topic string) error {
	payload := fmt.Sprintf("%d", time.Now().UnixNano())
	return t.client.Publish(ctx, channelPrefix+topic, payload).Err()
}

func (t *RedisTransport) Subscribe(ctx context.Context, topic string, fn func()) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	pubsub := t.client.Subscribe(subCtx, channelPrefix+topic)
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}

	t.mu.Lock()
	t.cancels = append(t.cancels, cancel)
	t.mu.Unlock()

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()

	return cancel, nil
}

func (t *RedisTransport) Close() error {
	t.mu.Lock()
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	t.mu.Unlock()
	return t.client.Close()
}
