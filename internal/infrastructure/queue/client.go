package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-catalog/internal/shared"
)

// Enqueuer is the producer side used by services. Tests swap in a mock.
type Enqueuer interface {
	EnqueueProcessCover(ctx context.Context, bookID int64, key string) error
	EnqueueDeleteCover(ctx context.Context, key string) error
}

// Client wraps asynq.Client with typed enqueue helpers
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

func (c *Client) EnqueueProcessCover(ctx context.Context, bookID int64, key string) error {
	return c.enqueue(ctx, shared.TypeProcessCover, shared.CoverPayload{BookID: bookID, Key: key},
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
}

func (c *Client) EnqueueDeleteCover(ctx context.Context, key string) error {
	return c.enqueue(ctx, shared.TypeDeleteCover, shared.CoverPayload{Key: key},
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(5),
	)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	if _, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, raw), opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
