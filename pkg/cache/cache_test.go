package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestMemoryCache 测试内存缓存
func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	c, err := NewWithOptions(
		WithMemory(DefaultMemoryConfig()),
		WithKeyPrefix("test:"),
	)
	if err != nil {
		t.Fatalf("failed to create memory cache: %v", err)
	}
	defer c.Close()

	t.Run("Set/Get", func(t *testing.T) {
		type Deposit struct {
			ID     string
			Amount float64
		}

		want := Deposit{ID: "fd-1", Amount: 1000}
		if err := c.Set(ctx, "deposit:1", want, 10*time.Minute); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}

		var got Deposit
		if err := c.Get(ctx, "deposit:1", &got); err != nil {
			t.Fatalf("failed to get cache: %v", err)
		}
		if got != want {
			t.Errorf("cached value mismatch: got %+v, want %+v", got, want)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		var v string
		err := c.Get(ctx, "missing", &v)
		if !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("Exists/Delete", func(t *testing.T) {
		if err := c.Set(ctx, "k", "v", 0); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}
		ok, _ := c.Exists(ctx, "k")
		if !ok {
			t.Fatal("expected key to exist")
		}
		if err := c.Delete(ctx, "k"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		ok, _ = c.Exists(ctx, "k")
		if ok {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("NoExpiration", func(t *testing.T) {
		if err := c.Set(ctx, "forever", "v", NoExpiration); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}
		ttl, err := c.TTL(ctx, "forever")
		if err != nil {
			t.Fatalf("failed to get ttl: %v", err)
		}
		if ttl != NoExpiration {
			t.Errorf("expected NoExpiration, got %v", ttl)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := c.Set(ctx, "short", "v", 50*time.Millisecond); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
		ok, _ := c.Exists(ctx, "short")
		if ok {
			t.Error("expected key to expire")
		}
	})

	t.Run("Expire", func(t *testing.T) {
		if err := c.Set(ctx, "slide", "v", 50*time.Millisecond); err != nil {
			t.Fatalf("failed to set cache: %v", err)
		}
		if err := c.Expire(ctx, "slide", time.Hour); err != nil {
			t.Fatalf("failed to expire: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
		ok, _ := c.Exists(ctx, "slide")
		if !ok {
			t.Error("expected extended key to survive")
		}
		if err := c.Expire(ctx, "missing", time.Hour); !errors.Is(err, ErrCacheNotFound) {
			t.Errorf("expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := c.Ping(ctx); err != nil {
			t.Errorf("ping failed: %v", err)
		}
	})
}

// TestDefaultTTL 默认 TTL 作用于 ttl=0 的写入
func TestDefaultTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithDefaultTTL(50 * time.Millisecond))
	defer c.Close()

	if err := c.Set(ctx, "k", 1, 0); err != nil {
		t.Fatalf("failed to set cache: %v", err)
	}
	ttl, err := c.TTL(ctx, "k")
	if err != nil {
		t.Fatalf("failed to get ttl: %v", err)
	}
	if ttl <= 0 || ttl > 50*time.Millisecond {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

// TestGetTyped 测试泛型 API
func TestGetTyped(t *testing.T) {
	ctx := context.Background()

	c, err := NewWithOptions(WithMemory(DefaultMemoryConfig()))
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer c.Close()

	if err := SetTyped(ctx, c, "sessionId", "session_1_abc", NoExpiration); err != nil {
		t.Fatalf("failed to set typed: %v", err)
	}

	got, err := GetTyped[string](ctx, c, "sessionId")
	if err != nil {
		t.Fatalf("failed to get typed: %v", err)
	}
	if got != "session_1_abc" {
		t.Errorf("expected session_1_abc, got %s", got)
	}
}

// TestValidate 测试配置校验
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"memory", DefaultConfig(), false},
		{"redis without addrs", &Config{Driver: DriverRedis, Serializer: &JSONSerializer{}, Redis: &RedisConfig{}}, true},
		{"unknown driver", &Config{Driver: "etcd", Serializer: &JSONSerializer{}}, true},
		{"no serializer", &Config{Driver: DriverMemory}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrCacheInvalidConfig) {
				t.Errorf("expected ErrCacheInvalidConfig, got %v", err)
			}
		})
	}
}

// TestRedisUnavailable 连接不可用时返回操作错误
func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := newRedisCacheWithClient(client, DefaultConfig())
	defer c.Close()

	var v string
	if err := c.Get(ctx, "k", &v); !errors.Is(err, ErrCacheOperation) {
		t.Errorf("expected ErrCacheOperation, got %v", err)
	}
	if err := c.Set(ctx, "k", "v", NoExpiration); !errors.Is(err, ErrCacheOperation) {
		t.Errorf("expected ErrCacheOperation, got %v", err)
	}
	if err := c.Ping(ctx); !errors.Is(err, ErrCacheConnection) {
		t.Errorf("expected ErrCacheConnection, got %v", err)
	}

	_, err := NewWithOptions(WithRedis(&RedisConfig{Addrs: []string{"127.0.0.1:1"}, DialTimeout: 100 * time.Millisecond}))
	if !errors.Is(err, ErrCacheConnection) {
		t.Errorf("expected ErrCacheConnection, got %v", err)
	}
}
