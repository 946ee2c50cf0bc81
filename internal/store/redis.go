package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// documentTTL bounds how long an abandoned room's document lingers in
// redis. Every write refreshes it.
const documentTTL = 24 * time.Hour

// Redis keeps documents in redis under doc:<roomID>. A room that was never
// written reads back as the empty document.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func docKey(roomID string) string { return "doc:" + roomID }

func (s *Redis) Read(ctx context.Context, roomID string) (string, error) {
	text, err := s.rdb.Get(ctx, docKey(roomID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *Redis) Write(ctx context.Context, roomID, text string) error {
	return s.rdb.Set(ctx, docKey(roomID), text, documentTTL).Err()
}
