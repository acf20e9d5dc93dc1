package logger

import (
	"io"

	"go.uber.org/zap/zapcore"
)

// Option 配置选项函数
type Option func(*Config)

// WithLevel 设置日志阈值
func WithLevel(level Level) Option {
	return func(c *Config) {
		c.Level = level
	}
}

// WithLevelName 按名称设置日志阈值（无法识别时为 INFO）
func WithLevelName(name string) Option {
	return func(c *Config) {
		c.Level = ParseLevel(name)
	}
}

// WithDevelopment 设置开发模式
func WithDevelopment(dev bool) Option {
	return func(c *Config) {
		c.Development = dev
	}
}

// WithFormat 设置日志格式
func WithFormat(format Format) Option {
	return func(c *Config) {
		c.Format = format
	}
}

// WithConsoleOutput 启用控制台输出
func WithConsoleOutput() Option {
	return func(c *Config) {
		c.Console = true
	}
}

// WithFileOutput 设置文件输出
func WithFileOutput(filename string) Option {
	return func(c *Config) {
		c.File = filename
	}
}

// WithRotateOutput 设置文件轮转输出
func WithRotateOutput(config *RotateConfig) Option {
	return func(c *Config) {
		c.Rotate = config
	}
}

// WithOutput 设置自定义输出（替代控制台）
func WithOutput(w io.Writer) Option {
	return func(c *Config) {
		c.Output = w
		c.Console = false
	}
}

// WithSampling 设置采样配置
func WithSampling(config *SamplingConfig) Option {
	return func(c *Config) {
		c.Sampling = config
	}
}

// WithCaller 设置是否记录调用位置
func WithCaller(enable bool) Option {
	return func(c *Config) {
		c.EnableCaller = enable
	}
}

// WithStacktrace 设置是否记录堆栈
func WithStacktrace(enable bool) Option {
	return func(c *Config) {
		c.EnableStacktrace = enable
	}
}

// WithUserAgent 设置默认 user agent
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithIdentity 设置用户/会话标识来源
func WithIdentity(id Identity) Option {
	return func(c *Config) {
		c.Identity = id
	}
}

// WithEncoderConfig 设置自定义 Encoder 配置
func WithEncoderConfig(config *zapcore.EncoderConfig) Option {
	return func(c *Config) {
		c.EncoderConfig = config
	}
}

// WithHook 添加 Hook
func WithHook(hook Hook) Option {
	return func(c *Config) {
		c.Hooks = append(c.Hooks, hook)
	}
}
