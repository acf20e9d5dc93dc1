package storage

import (
	"context"
	"errors"
	"time"

	"github.com/tokmz/fdbook/pkg/cache"
)

// DefaultScope 未指定客户端时使用的作用域
const DefaultScope = "default"

// Storage Web Storage 风格的字符串键值存储
type Storage interface {
	// GetItem 读取键值，不存在时 ok 为 false
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type scopeKey struct{}

// WithScope 将客户端作用域写入 Context，不同作用域的键互不可见
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext 读取客户端作用域
func ScopeFromContext(ctx context.Context) string {
	if scope, ok := ctx.Value(scopeKey{}).(string); ok && scope != "" {
		return scope
	}
	return DefaultScope
}

// cacheStorage 基于 cache.Cache 的 Storage
type cacheStorage struct {
	cache   cache.Cache
	name    string
	ttl     time.Duration
	sliding bool
}

// NewLocal 创建持久存储，键永不过期
func NewLocal(c cache.Cache) Storage {
	return &cacheStorage{cache: c, name: "local", ttl: cache.NoExpiration}
}

// NewSession 创建会话存储，键在 ttl 内无访问即过期，每次读取都会续期
func NewSession(c cache.Cache, ttl time.Duration) Storage {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &cacheStorage{cache: c, name: "session", ttl: ttl, sliding: ttl > 0}
}

func (s *cacheStorage) key(ctx context.Context, key string) string {
	return s.name + ":" + ScopeFromContext(ctx) + ":" + key
}

// GetItem 读取键值
func (s *cacheStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	fullKey := s.key(ctx, key)
	value, err := cache.GetTyped[string](ctx, s.cache, fullKey)
	if errors.Is(err, cache.ErrCacheNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if s.sliding {
		if err := s.cache.Expire(ctx, fullKey, s.ttl); err != nil && !errors.Is(err, cache.ErrCacheNotFound) {
			return value, true, err
		}
	}
	return value, true, nil
}

// SetItem 写入键值
func (s *cacheStorage) SetItem(ctx context.Context, key, value string) error {
	return cache.SetTyped(ctx, s.cache, s.key(ctx, key), value, s.ttl)
}

// RemoveItem 删除键值
func (s *cacheStorage) RemoveItem(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.key(ctx, key))
}
