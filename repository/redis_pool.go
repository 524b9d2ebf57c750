package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// Pool defaults, applied before any options.
const (
	DefaultMaxIdle        = 3
	DefaultIdleTimeout    = 240 * time.Second
	DefaultConnectTimeout = 5 * time.Second
	DefaultIOTimeout      = 5 * time.Second
)

type RedisPoolOption struct {
	f func(*redis.Pool)
}

func RedisPoolDial(f func() (redis.Conn, error)) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.Dial = f
	}}
}

// RedisPoolHost dials host:port over TCP with the default timeouts.
func RedisPoolHost(host string) RedisPoolOption {
	return RedisPoolDial(func() (redis.Conn, error) {
		return redis.Dial("tcp", host,
			redis.DialConnectTimeout(DefaultConnectTimeout),
			redis.DialReadTimeout(DefaultIOTimeout),
			redis.DialWriteTimeout(DefaultIOTimeout),
		)
	})
}

func RedisPoolIdleTimeout(timeout time.Duration) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.IdleTimeout = timeout
	}}
}

func RedisPoolMaxActive(i int) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.MaxActive = i
	}}
}

func RedisPoolMaxIdle(i int) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.MaxIdle = i
	}}
}

func RedisPoolTestOnBorrow(f func(c redis.Conn, t time.Time) error) RedisPoolOption {
	return RedisPoolOption{func(do *redis.Pool) {
		do.TestOnBorrow = f
	}}
}

// NewRedisPool returns a pool for a local Redis server unless a dial option
// says otherwise. Connections idle for over a minute are pinged on borrow.
func NewRedisPool(options ...RedisPoolOption) *redis.Pool {
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", ":6379")
		},
		MaxIdle:      DefaultMaxIdle,
		IdleTimeout:  DefaultIdleTimeout,
		TestOnBorrow: pingIfIdle,
	}

	for _, option := range options {
		option.f(pool)
	}

	return pool
}

func pingIfIdle(c redis.Conn, t time.Time) error {
	if time.Since(t) < time.Minute {
		return nil
	}
	_, err := c.Do("PING")
	return err
}
