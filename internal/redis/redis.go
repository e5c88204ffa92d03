package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Set writes a key with the given expiration (0 = no expiry).
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("redis set failed")
		return err
	}
	return nil
}

// Get reads a string key. Use IsMissing to distinguish "not set" from a
// connection problem.
func Get(ctx context.Context, key string) (string, error) {
	return Rdb.Get(ctx, key).Result()
}

// Del removes a key. Deletion failures are logged, not surfaced; callers
// treat the key as best-effort state.
func Del(ctx context.Context, key string) {
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("redis del failed")
	}
}

// IsMissing reports whether a Get error means the key simply does not exist.
func IsMissing(err error) bool {
	return errors.Is(err, redis.Nil)
}
