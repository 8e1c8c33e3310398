package saves

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/vovakirdan/icearena/internal/errors"
	redisclient "github.com/vovakirdan/icearena/internal/redis"
)

const (
	// Key pattern: {prefix}save:{id}; index: {prefix}saves (zset by updated_at)
	defaultKeyPrefix = "icearena:"

	errSlotNil   = "slot cannot be nil"
	errIDEmpty   = "slot ID cannot be empty"
	errClientNil = "redis client is required"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// KeyPrefix defaults to "icearena:".
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument(errClientNil)
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	prefix string
}

// NewRedisRepository creates a Redis-backed slot repository.
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &redisRepository{client: cfg.Client, prefix: prefix}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) slotKey(id string) string { return r.prefix + "save:" + id }
func (r *redisRepository) indexKey() string       { return r.prefix + "saves" }

func (r *redisRepository) Put(ctx context.Context, slot *Slot) error {
	if slot == nil {
		return errors.InvalidArgument(errSlotNil)
	}
	if slot.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	data, err := json.Marshal(slot)
	if err != nil {
		return errors.Wrap(err, "failed to marshal slot")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.slotKey(slot.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(slot.UpdatedAt.UnixMilli()),
			Member: slot.ID,
		})
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to store slot in Redis")
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*Slot, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	raw, err := r.client.Get(ctx, r.slotKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("save slot %q not found", id).WithMeta("id", id)
		}
		return nil, errors.Wrap(err, "failed to get slot from Redis")
	}

	var slot Slot
	if err := json.Unmarshal(raw, &slot); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal slot")
	}
	return &slot, nil
}

func (r *redisRepository) List(ctx context.Context) ([]*Slot, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read slot index")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.slotKey(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read slots")
	}

	out := make([]*Slot, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// index entry without a body
			continue
		}
		var slot Slot
		if err := json.Unmarshal([]byte(s), &slot); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal slot")
		}
		out = append(out, &slot)
	}
	return out, nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.slotKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete slot from Redis")
	}
	if del.Val() == 0 {
		return errors.NotFoundf("save slot %q not found", id).WithMeta("id", id)
	}
	return nil
}
