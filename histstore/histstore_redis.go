package histstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var redisHistPrefix string = "cmod/hist/"

// Approval counters in redis, shared across processes. Counters have no
// expiration; submitter history is meant to be permanent.
type RedisHistStore struct {
	Client *redis.Client
}

func NewRedisHistStore(redisURL string) (*RedisHistStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	rhs := RedisHistStore{
		Client: rdb,
	}
	return &rhs, nil
}

func (s *RedisHistStore) HasPriorPublicComment(ctx context.Context, submitterID string) (bool, error) {
	c, err := s.Client.Get(ctx, redisHistPrefix+submitterID).Int()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return c > 0, nil
}

func (s *RedisHistStore) RecordPublicComment(ctx context.Context, submitterID string) error {
	return s.Client.Incr(ctx, redisHistPrefix+submitterID).Err()
}
