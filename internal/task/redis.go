package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultQueueKey = "crawler:tasks"

// RedisQueue moves JSON task envelopes through a Redis list so several
// processes can share one backlog.
type RedisQueue struct {
	client  *redis.Client
	key     string
	popWait time.Duration
}

// NewRedisQueue connects and verifies the client. An empty key uses the
// default list name.
func NewRedisQueue(ctx context.Context, addr, password string, db int, key string) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if key == "" {
		key = defaultQueueKey
	}
	return &RedisQueue{client: client, key: key, popWait: 5 * time.Second}, nil
}

// NewRedisQueueWithClient wires an existing client, used by tests.
func NewRedisQueueWithClient(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = defaultQueueKey
	}
	return &RedisQueue{client: client, key: key, popWait: 5 * time.Second}
}

// Enqueue pushes the task onto the left of the list.
func (q *RedisQueue) Enqueue(ctx context.Context, t Task) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("lpush task: %w", err)
	}
	return nil
}

// Dequeue blocks on the right of the list, polling in popWait slices so
// context cancellation is honored between blocks.
func (q *RedisQueue) Dequeue(ctx context.Context) (Task, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Task{}, err
		}
		res, err := q.client.BRPop(ctx, q.popWait, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return Task{}, fmt.Errorf("brpop task: %w", err)
		}
		// BRPop returns [key, value].
		var t Task
		if err := json.Unmarshal([]byte(res[1]), &t); err != nil {
			return Task{}, fmt.Errorf("unmarshal task: %w", err)
		}
		return t, nil
	}
}

// Close releases the client.
func (q *RedisQueue) Close() {
	_ = q.client.Close()
}
