package cache

import (
	"context"
	"time"
)

// GetTyped 泛型读取
func GetTyped[T any](ctx context.Context, c Cache, key string) (T, error) {
	var value T
	err := c.Get(ctx, key, &value)
	return value, err
}

// SetTyped 泛型写入
func SetTyped[T any](ctx context.Context, c Cache, key string, value T, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl)
}
