package cache

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/pkg/errors"
)

// Cache redis cache
type Cache struct {
	Client *redis.Client
	prefix string
}

// New create new cache
func New(config *Config) *Cache {
	cache := &Cache{prefix: config.Prefix}
	cache.Client = redis.NewClient(&redis.Options{
		Addr:     getCacheURL(config),
		Password: config.Password,
		DB:       config.DB,
	})
	return cache
}

// Ping checks the connection
func (c *Cache) Ping() error {
	return c.Client.Ping().Err()
}

// Close cache
func (c *Cache) Close() error {
	return c.Client.Close()
}

func getCacheURL(config *Config) string {
	return fmt.Sprintf("%s:%s", config.Host, config.Port)
}

func (c *Cache) key(parts ...string) string {
	key := c.prefix
	for _, p := range parts {
		if key == "" {
			key = p
			continue
		}
		key += ":" + p
	}
	return key
}

// EventHandled reports whether a change event id was marked handled and has
// not expired.
func (c *Cache) EventHandled(eventID string) (bool, error) {
	n, err := c.Client.Exists(c.key("event", eventID)).Result()
	if err != nil {
		return false, errors.Wrap(err, "unable to read change event marker")
	}
	return n > 0, nil
}

// MarkEventHandled records a dispatched change event id for ttl
func (c *Cache) MarkEventHandled(eventID string, ttl time.Duration) error {
	err := c.Client.Set(c.key("event", eventID), time.Now().UTC().Format(time.RFC3339), ttl).Err()
	return errors.Wrap(err, "unable to mark change event")
}

// ResumeToken - get the last saved resume token of a stream; empty when none
func (c *Cache) ResumeToken(stream string) (string, error) {
	val, err := c.Client.Get(c.key("resume", stream)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "unable to read resume token")
	}
	return val, nil
}

// SaveResumeToken - store the resume token of a stream
func (c *Cache) SaveResumeToken(stream, token string) error {
	return errors.Wrap(c.Client.Set(c.key("resume", stream), token, 0).Err(), "unable to save resume token")
}
