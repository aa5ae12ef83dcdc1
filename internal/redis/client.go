package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"pedebot/internal/bot"
)

// ErrSessionNotFound is returned when no session exists for a conversation.
var ErrSessionNotFound = errors.New("session not found")

// Client persists one bot.Session per conversation id, with a TTL so
// abandoned conversations expire on their own.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) SetSession(ctx context.Context, conversationID string, session *bot.Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.rdb.Set(ctx, "session:"+conversationID, jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, conversationID string) (*bot.Session, error) {
	val, err := c.rdb.Get(ctx, "session:"+conversationID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session bot.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Step == "" {
		session.Step = bot.StepIdle
	}
	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, conversationID string) error {
	return c.rdb.Del(ctx, "session:"+conversationID).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
