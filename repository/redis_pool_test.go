package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/fortytw2/leaktest"
	"github.com/gomodule/redigo/redis"
)

func TestNewRedisPool(t *testing.T) {
	defer leaktest.Check(t)()

	t.Run("should return a new Redis pool with sensible defaults", func(t *testing.T) {
		pool := NewRedisPool()
		defer pool.Close()

		if pool.MaxIdle != DefaultMaxIdle {
			t.Errorf("got `%d`, want `%d` for pool MaxIdle", pool.MaxIdle, DefaultMaxIdle)
		}

		if pool.IdleTimeout != DefaultIdleTimeout {
			t.Errorf("got `%v`, want `%v` for pool IdleTimeout", pool.IdleTimeout, DefaultIdleTimeout)
		}

		if pool.TestOnBorrow == nil {
			t.Error("pool should test idle connections on borrow")
		}
	})

	t.Run("should dial the given host", func(t *testing.T) {
		s, err := miniredis.Run()
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		pool := NewRedisPool(RedisPoolHost(s.Addr()))
		defer pool.Close()

		conn := pool.Get()
		defer conn.Close()

		resp, err := redis.String(conn.Do("PING"))
		if err != nil {
			t.Fatal(err)
		}

		if resp != "PONG" {
			t.Errorf("got `%s`, want `%s`", resp, "PONG")
		}
	})

	t.Run("should set options as provided", func(t *testing.T) {
		s, err := miniredis.Run()
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		var borrowed bool

		options := []RedisPoolOption{
			RedisPoolDial(func() (redis.Conn, error) {
				return redis.Dial("tcp", s.Addr())
			}),
			RedisPoolIdleTimeout(42 * time.Second),
			RedisPoolMaxActive(42),
			RedisPoolMaxIdle(24),
			RedisPoolTestOnBorrow(func(c redis.Conn, tm time.Time) error {
				borrowed = true
				_, err := c.Do("PING")
				return err
			}),
		}

		pool := NewRedisPool(options...)
		defer pool.Close()

		if pool.IdleTimeout != 42*time.Second {
			t.Errorf("got `%v`, want `%v` for pool IdleTimeout", pool.IdleTimeout, 42*time.Second)
		}

		if pool.MaxActive != 42 {
			t.Errorf("got `%d`, want `%d` for pool MaxActive", pool.MaxActive, 42)
		}

		if pool.MaxIdle != 24 {
			t.Errorf("got `%d`, want `%d` for pool MaxIdle", pool.MaxIdle, 24)
		}

		conn := pool.Get()
		if _, err := redis.String(conn.Do("GET", "foo")); err != redis.ErrNil {
			t.Error(err)
		}
		conn.Close()

		// The idle connection is tested when it is borrowed again.
		conn = pool.Get()
		defer conn.Close()

		if _, err := conn.Do("PING"); err != nil {
			t.Error(err)
		}

		if !borrowed {
			t.Error("TestOnBorrow should have been called")
		}
	})
}

func TestPingIfIdle(t *testing.T) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	conn, err := redis.Dial("tcp", s.Addr())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := pingIfIdle(conn, time.Now()); err != nil {
		t.Error(err)
	}

	if err := pingIfIdle(conn, time.Now().Add(-2*time.Minute)); err != nil {
		t.Error(err)
	}

	s.Close()

	if err := pingIfIdle(conn, time.Now().Add(-2*time.Minute)); err == nil {
		t.Error("ping of a closed server should fail")
	}
}
