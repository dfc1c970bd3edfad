package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog-platform/internal/core/domain"
)

// flashTTL bounds how long an unconsumed flash survives. Flashes are normally
// consumed on the very next dashboard render; the TTL only guards against
// authors who never come back.
const flashTTL = 15 * time.Minute

// FlashStore keeps one-time dashboard notifications in Redis, keyed by author
// id, so the web tier stays stateless and horizontally replicable.
// Key format: flash:<author_id>, value: a Redis list of JSON-encoded flashes.
type FlashStore struct {
	client *redis.Client
}

// NewFlashStore creates a FlashStore wrapping the given Redis client.
func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

// Push appends a flash to the author's pending list.
func (s *FlashStore) Push(ctx context.Context, authorID string, flash domain.Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("flash push: %w", err)
	}

	key := s.key(authorID)
	if err := s.client.RPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("flash push: %w", err)
	}
	return s.client.Expire(ctx, key, flashTTL).Err()
}

// Pop returns all pending flashes for the author in insertion order and
// removes them, so each flash is rendered at most once.
func (s *FlashStore) Pop(ctx context.Context, authorID string) ([]domain.Flash, error) {
	key := s.key(authorID)

	pipe := s.client.TxPipeline()
	items := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flash pop: %w", err)
	}

	raw := items.Val()
	flashes := make([]domain.Flash, 0, len(raw))
	for _, item := range raw {
		var f domain.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *FlashStore) key(authorID string) string {
	return "flash:" + authorID
}
