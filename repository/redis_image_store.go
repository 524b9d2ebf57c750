package repository

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// RedisImageStore keeps the latest screenshot under a single key so that
// every API instance serves the same image.
type RedisImageStore struct {
	Pool *redis.Pool
	Key  string

	// TTL expires a stale image when no new screenshot arrives. Zero keeps
	// it indefinitely.
	TTL time.Duration
}

func (s *RedisImageStore) Put(ctx context.Context, png []byte) error {
	conn, err := s.Pool.GetContext(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot get Redis connection")
	}
	defer conn.Close()

	args := redis.Args{}.Add(s.Key, png)
	if s.TTL > 0 {
		args = args.Add("PX", s.TTL.Milliseconds())
	}

	if _, err := conn.Do("SET", args...); err != nil {
		return errors.Wrapf(err, "cannot store image at `%s`", s.Key)
	}

	return nil
}

func (s *RedisImageStore) Get(ctx context.Context) ([]byte, error) {
	conn, err := s.Pool.GetContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get Redis connection")
	}
	defer conn.Close()

	png, err := redis.Bytes(conn.Do("GET", s.Key))
	if err == redis.ErrNil {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read image at `%s`", s.Key)
	}

	return png, nil
}
