package logger

import (
	"io"

	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// 基础配置
	Level       Level  // 日志阈值（注意零值为 ErrorLevel，推荐从 DefaultConfig 开始）
	Development bool   // 开发模式：可读单行格式；否则 JSON
	Format      Format // 显式指定格式（为空时由 Development 决定）

	// 输出配置
	Console bool          // 是否输出到控制台（ERROR 写 stderr，其余写 stdout）
	File    string        // 文件路径（空则不输出到文件）
	Rotate  *RotateConfig // 轮转配置（nil 则不轮转）
	Output  io.Writer     // 自定义输出（设置后替代控制台输出）

	// 性能配置
	Sampling *SamplingConfig // 采样配置（nil 则不采样）

	// 功能配置
	EnableCaller     bool // 是否记录调用位置（仅 JSON 格式）
	EnableStacktrace bool // ERROR 是否记录堆栈

	// 上下文配置
	UserAgent string   // Context 中缺少客户端信息时使用的 user agent
	Identity  Identity // 用户/会话标识来源（nil 时为 anonymous + 进程级会话）

	// 扩展配置
	EncoderConfig *zapcore.EncoderConfig // 自定义 Encoder 配置
	Hooks         []Hook                 // Hook 列表
}

// DefaultConfig 返回默认配置（INFO、JSON、控制台）
func DefaultConfig() *Config {
	return &Config{
		Level:            InfoLevel,
		Console:          true,
		EnableStacktrace: true,
	}
}

// setDefaults 设置默认值
func (c *Config) setDefaults() {
	if !c.Format.IsValid() {
		if c.Development {
			c.Format = ConsoleFormat
		} else {
			c.Format = JSONFormat
		}
	}
	// 没有任何输出时默认输出到控制台
	if !c.Console && c.File == "" && c.Rotate == nil && c.Output == nil {
		c.Console = true
	}
	if c.Identity == nil {
		c.Identity = newProcessIdentity()
	}
}
