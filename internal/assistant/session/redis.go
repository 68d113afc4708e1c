package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares sessions between worker replicas. Turns are RPUSHed to a list, so
// history stays append-only on the server side too.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    Clock
}

// NewRedisStore expires idle sessions after ttl; zero keeps them forever.
func NewRedisStore(client *redis.Client, ttl time.Duration, clock Clock) *RedisStore {
	if clock == nil {
		clock = time.Now
	}
	return &RedisStore{client: client, ttl: ttl, now: clock}
}

func historyKey(id string) string { return fmt.Sprintf("chat:session:%s:history", id) }
func contextKey(id string) string { return fmt.Sprintf("chat:session:%s:context", id) }

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	pipe := r.client.Pipeline()
	historyCmd := pipe.LRange(ctx, historyKey(id), 0, -1)
	contextCmd := pipe.HGetAll(ctx, contextKey(id))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	s := &Session{ID: id, History: make([]Turn, 0, len(historyCmd.Val())), Context: map[string]interface{}{}}
	for _, raw := range historyCmd.Val() {
		var turn Turn
		if err := json.Unmarshal([]byte(raw), &turn); err != nil {
			return nil, fmt.Errorf("decode turn in session %s: %w", id, err)
		}
		s.History = append(s.History, turn)
	}
	for k, raw := range contextCmd.Val() {
		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		s.Context[k] = v
	}
	return s, nil
}

func (r *RedisStore) AppendTurn(ctx context.Context, id string, role Role, content string) error {
	payload, err := json.Marshal(Turn{Role: role, Content: content, Timestamp: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, historyKey(id), payload)
	if r.ttl > 0 {
		pipe.Expire(ctx, historyKey(id), r.ttl)
		pipe.Expire(ctx, contextKey(id), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn to session %s: %w", id, err)
	}
	return nil
}

// SetContext stores one context value as JSON.
func (r *RedisStore) SetContext(ctx context.Context, id, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode context %s: %w", key, err)
	}
	if err := r.client.HSet(ctx, contextKey(id), key, payload).Err(); err != nil {
		return fmt.Errorf("set context on session %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, historyKey(id), contextKey(id)).Err(); err != nil {
		return fmt.Errorf("clear session %s: %w", id, err)
	}
	return nil
}
