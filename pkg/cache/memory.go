package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryCache 基于 go-cache 的内存实现，进程退出即丢失
type memoryCache struct {
	cache      *gocache.Cache
	serializer Serializer
	keyPrefix  string
	defaultTTL time.Duration
}

func newMemoryCache(cfg *Config) *memoryCache {
	if cfg.Memory == nil {
		cfg.Memory = DefaultMemoryConfig()
	}
	return &memoryCache{
		cache:      gocache.New(gocache.NoExpiration, cfg.Memory.CleanupInterval),
		serializer: cfg.Serializer,
		keyPrefix:  cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}
}

func (m *memoryCache) buildKey(key string) string {
	return m.keyPrefix + key
}

// expiration 转换为 go-cache 的过期参数
func (m *memoryCache) expiration(ttl time.Duration) time.Duration {
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	if ttl < 0 {
		return gocache.NoExpiration
	}
	return ttl
}

// Get 获取缓存
func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	data, found := m.cache.Get(m.buildKey(key))
	if !found {
		return ErrCacheNotFound
	}

	bytes, ok := data.([]byte)
	if !ok {
		return fmt.Errorf("%w: invalid cache data type", ErrCacheSerialization)
	}
	if err := m.serializer.Unmarshal(bytes, value); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSerialization, err)
	}
	return nil
}

// Set 设置缓存
func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	bytes, err := m.serializer.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSerialization, err)
	}
	m.cache.Set(m.buildKey(key), bytes, m.expiration(ttl))
	return nil
}

// Delete 删除缓存
func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.cache.Delete(m.buildKey(key))
	}
	return nil
}

// Exists 检查键是否存在
func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, found := m.cache.Get(m.buildKey(key))
	return found, nil
}

// TTL 获取剩余生存时间，永不过期返回 NoExpiration
func (m *memoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	_, expiration, found := m.cache.GetWithExpiration(m.buildKey(key))
	if !found {
		return 0, ErrCacheNotFound
	}
	if expiration.IsZero() {
		return NoExpiration, nil
	}
	return time.Until(expiration), nil
}

// Expire 重新设置过期时间
func (m *memoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	fullKey := m.buildKey(key)
	data, found := m.cache.Get(fullKey)
	if !found {
		return ErrCacheNotFound
	}
	m.cache.Set(fullKey, data, m.expiration(ttl))
	return nil
}

// Ping 内存缓存始终可用
func (m *memoryCache) Ping(context.Context) error {
	return nil
}

// Close 清空缓存
func (m *memoryCache) Close() error {
	m.cache.Flush()
	return nil
}

// String 返回缓存类型
func (m *memoryCache) String() string {
	return fmt.Sprintf("MemoryCache(prefix=%s, items=%d)", m.keyPrefix, m.cache.ItemCount())
}
