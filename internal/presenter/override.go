package presenter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/model"
	"github.com/trucksimfm/companion/internal/redis"
)

const overrideKey = "presenter:override"

// ErrNoRedis is returned when an override is set on a deployment running
// without Redis.
var ErrNoRedis = errors.New("redis not configured")

// RedisOverrides stores a forced presenter in Redis with a TTL so a forgotten
// override expires on its own after the show.
type RedisOverrides struct{}

var _ Overrides = (*RedisOverrides)(nil)

func NewRedisOverrides() *RedisOverrides {
	return &RedisOverrides{}
}

func (o *RedisOverrides) ActiveOverride(ctx context.Context) (*model.LivePresenter, error) {
	// Without Redis there is simply never an override.
	if redis.Rdb == nil {
		return nil, nil
	}

	raw, err := redis.Get(ctx, overrideKey)
	if err != nil {
		if redis.IsMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	var lp model.LivePresenter
	if err := json.Unmarshal([]byte(raw), &lp); err != nil {
		// a corrupt override must not take the banner down
		log.Error().Err(err).Msg("discarding malformed presenter override")
		redis.Del(ctx, overrideKey)
		return nil, nil
	}
	return &lp, nil
}

// SetOverride forces the given presenter until the TTL runs out.
func (o *RedisOverrides) SetOverride(ctx context.Context, lp model.LivePresenter, ttl time.Duration) error {
	if redis.Rdb == nil {
		return ErrNoRedis
	}

	raw, err := json.Marshal(lp)
	if err != nil {
		return err
	}
	return redis.Set(ctx, overrideKey, string(raw), ttl)
}

// ClearOverride returns the banner to schedule-based resolution.
func (o *RedisOverrides) ClearOverride(ctx context.Context) {
	if redis.Rdb == nil {
		return
	}
	redis.Del(ctx, overrideKey)
}
