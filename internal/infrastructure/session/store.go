package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/boj/redistore"
	"github.com/gomodule/redigo/redis"
	"github.com/gorilla/sessions"
)

// Name is the cookie that carries the login session.
const Name = "qms_session"

// Config selects the backing store.
type Config struct {
	Store     string
	Secret    string
	MaxAge    int
	Secure    bool
	RedisAddr string
	RedisPass string
	RedisDB   int
}

func (c Config) options() *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   c.MaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewStore returns a Redis-backed store when Store is "redis", otherwise a
// signed cookie store.
func NewStore(cfg Config) (sessions.Store, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	if cfg.Store != "redis" {
		store := sessions.NewCookieStore([]byte(cfg.Secret))
		store.Options = cfg.options()
		return store, nil
	}

	pool := &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", cfg.RedisAddr,
				redis.DialPassword(cfg.RedisPass),
				redis.DialDatabase(cfg.RedisDB),
			)
		},
	}

	store, err := redistore.NewRediStoreWithPool(pool, []byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to create redis session store: %w", err)
	}
	store.SetKeyPrefix("qms:session:")
	store.SetMaxAge(cfg.MaxAge)
	store.Options = cfg.options()

	return store, nil
}
