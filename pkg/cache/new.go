package cache

import "fmt"

// New 创建缓存实例
func New(cfg *Config) (Cache, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Serializer == nil {
		cfg.Serializer = &JSONSerializer{}
	}
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = NoExpiration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverRedis:
		return newRedisCache(cfg)
	case DriverMemory:
		return newMemoryCache(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unsupported driver type", ErrCacheInvalidConfig)
	}
}

// NewWithOptions 使用 Options 模式创建缓存实例
func NewWithOptions(opts ...Option) (Cache, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return New(cfg)
}

// NewMemory 创建内存缓存
func NewMemory(opts ...Option) Cache {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Serializer == nil {
		cfg.Serializer = &JSONSerializer{}
	}
	return newMemoryCache(cfg)
}
