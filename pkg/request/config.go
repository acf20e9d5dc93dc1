package request

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL 未配置时使用的接口地址
	DefaultBaseURL = "http://localhost:8084/api"
	// DefaultTimeout 单次调用的超时上限
	DefaultTimeout = 10 * time.Second
)

// Config HTTP 客户端配置
type Config struct {
	BaseURL             string            // 基础 URL（默认 DefaultBaseURL）
	Timeout             time.Duration     // 全局超时（默认 10s）
	Headers             map[string]string // 全局默认请求头
	UserAgent           string            // User-Agent 请求头
	MaxIdleConns        int               // 最大空闲连接数（默认 100）
	MaxIdleConnsPerHost int               // 每 Host 最大空闲连接（默认 10）
	MaxConnsPerHost     int               // 每 Host 最大连接（默认 100）
	IdleConnTimeout     time.Duration     // 空闲连接超时（默认 90s）
	Interceptors        []Interceptor     // 拦截器链
	EnableTracing       bool              // 启用 OpenTelemetry 追踪
	Transport           http.RoundTripper // 自定义 Transport（覆盖连接池配置）
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BaseURL:             DefaultBaseURL,
		Timeout:             DefaultTimeout,
		Headers:             make(map[string]string),
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,
	}
}

// buildTransport 根据配置构建 http.Transport
func (c *Config) buildTransport() http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        c.MaxIdleConns,
		MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
		MaxConnsPerHost:     c.MaxConnsPerHost,
		IdleConnTimeout:     c.IdleConnTimeout,
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithBaseURL 设置基础 URL，空字符串保留默认值
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithTimeout 设置全局超时
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithHeader 设置全局默认请求头
func WithHeader(key, value string) Option {
	return func(c *Config) { c.Headers[key] = value }
}

// WithHeaders 批量设置全局默认请求头
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) {
		for k, v := range headers {
			c.Headers[k] = v
		}
	}
}

// WithUserAgent 设置 User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Config) { c.UserAgent = ua }
}

// WithMaxIdleConns 设置最大空闲连接数
func WithMaxIdleConns(n int) Option {
	return func(c *Config) { c.MaxIdleConns = n }
}

// WithMaxConnsPerHost 设置每 Host 最大连接
func WithMaxConnsPerHost(n int) Option {
	return func(c *Config) { c.MaxConnsPerHost = n }
}

// WithInterceptor 添加拦截器
func WithInterceptor(i Interceptor) Option {
	return func(c *Config) { c.Interceptors = append(c.Interceptors, i) }
}

// WithLogger 添加日志拦截器
func WithLogger(l Logger) Option {
	return WithInterceptor(NewLoggingInterceptor(l))
}

// WithTracing 启用 OpenTelemetry 追踪
func WithTracing(enable bool) Option {
	return func(c *Config) { c.EnableTracing = enable }
}

// WithTransport 设置自定义 Transport
func WithTransport(t http.RoundTripper) Option {
	return func(c *Config) { c.Transport = t }
}
