package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
)

// RedisThrottle allows one event per Interval across every process sharing
// the Redis server. The key expires when the interval has elapsed.
type RedisThrottle struct {
	Pool     *redis.Pool
	Key      string
	Interval time.Duration
}

// Allow reports whether the caller may proceed, claiming the interval if so.
func (rt *RedisThrottle) Allow() (bool, error) {
	conn := rt.Pool.Get()
	defer conn.Close()

	interval := rt.Interval.Milliseconds()
	if interval < 1 {
		interval = 1
	}

	_, err := redis.String(conn.Do("SET", rt.Key, time.Now().Unix(), "NX", "PX", interval))
	if err == redis.ErrNil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "cannot claim throttle `%s`", rt.Key)
	}

	return true, nil
}
