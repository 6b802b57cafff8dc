// Package session provides the per-identity ephemeral state kept across
// requests: the current cart plus small context values (current foodtruck,
// last confirmed order). Backed by redis in production.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LiamF-2261667/fruckr-sub001/internal/cart"
)

// Context value keys used by the handlers.
const (
	KeyCurrentFoodtruck = "current_foodtruck"
	KeyCurrentOrder     = "current_order"
)

type Store interface {
	LoadCart(ctx context.Context, uid string) (*cart.Cart, error)
	SaveCart(ctx context.Context, uid string, c *cart.Cart) error
	DeleteCart(ctx context.Context, uid string) error

	SetValue(ctx context.Context, uid, key string, v any) error
	// GetValue unmarshals the stored value into dst and reports whether the
	// key was present.
	GetValue(ctx context.Context, uid, key string, dst any) (bool, error)
	DeleteValue(ctx context.Context, uid, key string) error

	// Clear removes all session state for the identity (logout).
	Clear(ctx context.Context, uid string) error
}

const cartField = "cart"

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "session", ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) key(uid, field string) string {
	var b strings.Builder
	b.Grow(len(s.prefix) + len(uid) + len(field) + 2)
	b.WriteString(s.prefix)
	b.WriteString(":")
	b.WriteString(uid)
	b.WriteString(":")
	b.WriteString(field)
	return b.String()
}

func (s *RedisStore) LoadCart(ctx context.Context, uid string) (*cart.Cart, error) {
	var c cart.Cart
	ok, err := s.GetValue(ctx, uid, cartField, &c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, uid string, c *cart.Cart) error {
	return s.SetValue(ctx, uid, cartField, c)
}

func (s *RedisStore) DeleteCart(ctx context.Context, uid string) error {
	return s.DeleteValue(ctx, uid, cartField)
}

func (s *RedisStore) SetValue(ctx context.Context, uid, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal session value: %w", err)
	}
	return s.client.Set(ctx, s.key(uid, key), data, s.ttl).Err()
}

func (s *RedisStore) GetValue(ctx context.Context, uid, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(uid, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get session value: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal session value: %w", err)
	}
	return true, nil
}

func (s *RedisStore) DeleteValue(ctx context.Context, uid, key string) error {
	return s.client.Del(ctx, s.key(uid, key)).Err()
}

func (s *RedisStore) Clear(ctx context.Context, uid string) error {
	iter := s.client.Scan(ctx, 0, s.key(uid, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan session keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
