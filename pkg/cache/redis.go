package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache Redis 实现，用于需要跨进程持久的存储
type redisCache struct {
	client     redis.UniversalClient
	serializer Serializer
	keyPrefix  string
	defaultTTL time.Duration
}

// newRedisCache 创建 Redis 缓存实例并测试连接
func newRedisCache(cfg *Config) (Cache, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Redis.Addrs,
		MasterName:   cfg.Redis.MasterName,
		Username:     cfg.Redis.Username,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrCacheConnection, err)
	}

	return newRedisCacheWithClient(client, cfg), nil
}

func newRedisCacheWithClient(client redis.UniversalClient, cfg *Config) *redisCache {
	return &redisCache{
		client:     client,
		serializer: cfg.Serializer,
		keyPrefix:  cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}
}

func (r *redisCache) buildKey(key string) string {
	return r.keyPrefix + key
}

// expiration 转换为 Redis 的过期参数，0 表示不过期
func (r *redisCache) expiration(ttl time.Duration) time.Duration {
	if ttl == 0 {
		ttl = r.defaultTTL
	}
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Get 获取缓存
func (r *redisCache) Get(ctx context.Context, key string, value any) error {
	data, err := r.client.Get(ctx, r.buildKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}

	if err := r.serializer.Unmarshal(data, value); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSerialization, err)
	}
	return nil
}

// Set 设置缓存
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	bytes, err := r.serializer.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheSerialization, err)
	}
	if err := r.client.Set(ctx, r.buildKey(key), bytes, r.expiration(ttl)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}
	return nil
}

// Delete 删除缓存
func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = r.buildKey(key)
	}
	if err := r.client.Del(ctx, fullKeys...).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}
	return nil
}

// Exists 检查键是否存在
func (r *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.buildKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}
	return n > 0, nil
}

// TTL 获取剩余生存时间，永不过期返回 NoExpiration
func (r *redisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, r.buildKey(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}
	switch ttl {
	case -2:
		return 0, ErrCacheNotFound
	case -1:
		return NoExpiration, nil
	}
	return ttl, nil
}

// Expire 重新设置过期时间
func (r *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	fullKey := r.buildKey(key)
	var (
		ok  bool
		err error
	)
	if exp := r.expiration(ttl); exp == 0 {
		ok, err = r.client.Persist(ctx, fullKey).Result()
		if err == nil && !ok {
			// Persist 对本就不过期的键也返回 false
			var n int64
			n, err = r.client.Exists(ctx, fullKey).Result()
			ok = n > 0
		}
	} else {
		ok, err = r.client.Expire(ctx, fullKey, exp).Result()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheOperation, err)
	}
	if !ok {
		return ErrCacheNotFound
	}
	return nil
}

// Ping 检查连接
func (r *redisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheConnection, err)
	}
	return nil
}

// Close 关闭连接
func (r *redisCache) Close() error {
	return r.client.Close()
}

// String 返回缓存类型
func (r *redisCache) String() string {
	return fmt.Sprintf("RedisCache(prefix=%s)", r.keyPrefix)
}
