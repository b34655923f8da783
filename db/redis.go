package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) SaveTempo(ctx context.Context, bpm int) error {
	return errors.Wrap(s.client.Set(ctx, TempoKey, bpm, 0).Err(), "saving tempo to redis")
}

func (s *RedisStore) LoadTempo(ctx context.Context) (int, error) {
	bpm, err := s.client.Get(ctx, TempoKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoTempo
	}
	if err != nil {
		return 0, errors.Wrap(err, "loading tempo from redis")
	}
	return bpm, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
