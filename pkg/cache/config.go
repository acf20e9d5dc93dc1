package cache

import (
	"fmt"
	"time"
)

// DriverType 驱动类型
type DriverType string

const (
	DriverRedis  DriverType = "redis"
	DriverMemory DriverType = "memory"
)

// Config 缓存配置
type Config struct {
	Driver     DriverType    // 驱动类型
	Redis      *RedisConfig  // Redis 配置
	Memory     *MemoryConfig // Memory 配置
	Serializer Serializer    // 序列化器
	KeyPrefix  string        // 键前缀（避免冲突）
	DefaultTTL time.Duration // 默认 TTL（NoExpiration 表示永不过期）
}

// RedisConfig Redis 配置
// Addrs 多个地址时为集群，设置 MasterName 时为哨兵
type RedisConfig struct {
	Addrs        []string      `mapstructure:"addrs"`
	MasterName   string        `mapstructure:"master_name"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MemoryConfig 内存缓存配置
type MemoryConfig struct {
	CleanupInterval time.Duration // 过期清理间隔
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Driver:     DriverMemory,
		Serializer: &JSONSerializer{},
		DefaultTTL: NoExpiration,
		Memory:     DefaultMemoryConfig(),
	}
}

// DefaultRedisConfig 返回默认 Redis 配置
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addrs:        []string{"localhost:6379"},
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// DefaultMemoryConfig 返回默认 Memory 配置
func DefaultMemoryConfig() *MemoryConfig {
	return &MemoryConfig{CleanupInterval: 5 * time.Minute}
}

// Option 配置选项
type Option func(*Config)

// WithRedis 使用 Redis 驱动
func WithRedis(cfg *RedisConfig) Option {
	return func(c *Config) {
		c.Driver = DriverRedis
		c.Redis = cfg
	}
}

// WithMemory 使用内存驱动
func WithMemory(cfg *MemoryConfig) Option {
	return func(c *Config) {
		c.Driver = DriverMemory
		c.Memory = cfg
	}
}

// WithSerializer 设置序列化器
func WithSerializer(s Serializer) Option {
	return func(c *Config) { c.Serializer = s }
}

// WithKeyPrefix 设置键前缀
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) { c.KeyPrefix = prefix }
}

// WithDefaultTTL 设置默认 TTL
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Config) { c.DefaultTTL = ttl }
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Serializer == nil {
		return fmt.Errorf("%w: serializer is required", ErrCacheInvalidConfig)
	}
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverRedis:
		if c.Redis == nil || len(c.Redis.Addrs) == 0 {
			return fmt.Errorf("%w: redis addrs is required", ErrCacheInvalidConfig)
		}
		return nil
	default:
		return fmt.Errorf("%w: invalid driver type %q", ErrCacheInvalidConfig, c.Driver)
	}
}
