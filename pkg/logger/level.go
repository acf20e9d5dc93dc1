package logger

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level 日志级别
// 数值越小越严重：只有 level <= 阈值 的日志才会输出
type Level int8

const (
	// ErrorLevel 错误信息（影响功能但不致命）
	ErrorLevel Level = iota
	// WarnLevel 警告信息（需要关注但不影响运行）
	WarnLevel
	// InfoLevel 常规信息（默认级别）
	InfoLevel
	// DebugLevel 调试信息（开发环境）
	DebugLevel
)

// ParseLevel 解析级别名称（大小写不敏感），无法识别时回退到 InfoLevel
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return ErrorLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "INFO":
		return InfoLevel
	case "DEBUG":
		return DebugLevel
	default:
		return InfoLevel
	}
}

// String 返回级别名称
func (l Level) String() string {
	switch l {
	case ErrorLevel:
		return "ERROR"
	case WarnLevel:
		return "WARN"
	case InfoLevel:
		return "INFO"
	case DebugLevel:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Enabled 判断该级别在阈值 threshold 下是否输出
func (l Level) Enabled(threshold Level) bool {
	return l <= threshold
}

// toZapLevel 转换为 zap 级别
func (l Level) toZapLevel() zapcore.Level {
	switch l {
	case ErrorLevel:
		return zapcore.ErrorLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case DebugLevel:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// fromZapLevel 从 zap 级别转换
func fromZapLevel(level zapcore.Level) Level {
	switch {
	case level >= zapcore.ErrorLevel:
		return ErrorLevel
	case level == zapcore.WarnLevel:
		return WarnLevel
	case level == zapcore.InfoLevel:
		return InfoLevel
	default:
		return DebugLevel
	}
}
