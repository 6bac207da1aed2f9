package tmpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Drolfothesgnir/markplus/markup"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/redis/go-redis/v9"
)

// Different key prefixes for different use cases
const (
	RenderPrefix = "render:"
)

// ErrNotFound is returned for keys which were never stored or already expired.
var ErrNotFound = errors.New("rendered document not found or expired")

// Rendered is a rendered document kept between requests.
type Rendered struct {
	Format     string           `json:"format"`
	Output     string           `json:"output"`
	TextLength int              `json:"text_length"`
	Warnings   []markup.Warning `json:"warnings"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Store keeps rendered documents for a limited time.
type Store interface {
	SaveRendered(ctx context.Context, key string, data Rendered, ttl time.Duration) error
	GetRendered(ctx context.Context, key string) (*Rendered, error)
	DeleteRendered(ctx context.Context, key string) error
}

type RedisStore struct {
	client *redis.Client
}

// NewStore returns a Redis backed Store when REDIS_ADDRESS is set, and an in-process one
// otherwise.
func NewStore(config *util.Config) Store {
	if config.RedisAddress == "" {
		return NewMemoryStore()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  e.g. "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return &RedisStore{client: rdb}
}

// SaveRendered stores data under key for ttl.
func (store *RedisStore) SaveRendered(ctx context.Context, key string, data Rendered, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize rendered document: %w", err)
	}

	return store.client.Set(ctx, RenderPrefix+key, jsonData, ttl).Err()
}

// GetRendered returns the document stored under key, or ErrNotFound.
func (store *RedisStore) GetRendered(ctx context.Context, key string) (*Rendered, error) {
	jsonData, err := store.client.Get(ctx, RenderPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rendered document: %w", err)
	}

	var data Rendered
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, fmt.Errorf("failed to parse rendered document json: %w", err)
	}

	return &data, nil
}

// DeleteRendered removes the document stored under key.
func (store *RedisStore) DeleteRendered(ctx context.Context, key string) error {
	return store.client.Del(ctx, RenderPrefix+key).Err()
}

// Close closes the connection pool.
func (store *RedisStore) Close() error {
	return store.client.Close()
}
