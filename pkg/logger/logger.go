package logger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UnknownEndpoint 无法确定失败请求的接口时使用的占位
const UnknownEndpoint = "Unknown endpoint"

// Logger 日志接口
type Logger interface {
	// 基础日志方法
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, err error, fields ...zap.Field)

	// 带 Context 的日志方法
	DebugContext(ctx context.Context, msg string, fields ...zap.Field)
	InfoContext(ctx context.Context, msg string, fields ...zap.Field)
	WarnContext(ctx context.Context, msg string, fields ...zap.Field)
	ErrorContext(ctx context.Context, msg string, err error, fields ...zap.Field)

	// 业务辅助方法
	LogAPIError(ctx context.Context, endpoint string, err error, requestID string)
	LogUserAction(ctx context.Context, action string, details ...zap.Field)

	// 工具方法
	With(fields ...zap.Field) Logger // 创建子 Logger
	Sync() error                     // 刷新缓冲区
	SetLevel(level Level)            // 动态调整阈值
	Level() Level                    // 获取当前阈值
}

// logger 日志实现
type logger struct {
	zap       *zap.Logger
	level     zap.AtomicLevel
	userAgent string
	identity  Identity
}

// New 创建 Logger（使用 Config）
func New(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config.setDefaults()

	level := zap.NewAtomicLevelAt(config.Level.toZapLevel())
	core, err := buildCore(config, level)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{}
	if config.EnableCaller {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if config.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return &logger{
		zap:       zap.New(core, opts...),
		level:     level,
		userAgent: config.UserAgent,
		identity:  config.Identity,
	}, nil
}

// NewWithOptions 创建 Logger（使用 Options 模式）
func NewWithOptions(opts ...Option) (Logger, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return New(config)
}

// NewProduction 创建生产环境 Logger
func NewProduction() (Logger, error) {
	return NewWithOptions(
		WithLevel(InfoLevel),
		WithDevelopment(false),
		WithConsoleOutput(),
	)
}

// NewDevelopment 创建开发环境 Logger
func NewDevelopment() (Logger, error) {
	return NewWithOptions(
		WithLevel(DebugLevel),
		WithDevelopment(true),
		WithConsoleOutput(),
	)
}

// NewNop 创建不输出任何内容的 Logger
func NewNop() Logger {
	return &logger{
		zap:      zap.NewNop(),
		level:    zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		identity: newProcessIdentity(),
	}
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func encodeTimestamp(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(timestampLayout))
}

// buildEncoder 构建 Encoder
func buildEncoder(config *Config) zapcore.Encoder {
	if config.EncoderConfig != nil {
		if config.Format == ConsoleFormat {
			return zapcore.NewConsoleEncoder(*config.EncoderConfig)
		}
		return zapcore.NewJSONEncoder(*config.EncoderConfig)
	}

	if config.Format == ConsoleFormat {
		// [timestamp] LEVEL: message {fields}
		return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:       "timestamp",
			LevelKey:      "level",
			MessageKey:    "message",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
			EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString("[" + t.UTC().Format(timestampLayout) + "]")
			},
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(fromZapLevel(l).String() + ":")
			},
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " ",
		})
	}

	callerKey := zapcore.OmitKey
	if config.EnableCaller {
		callerKey = "caller"
	}
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		CallerKey:      callerKey,
		FunctionKey:    zapcore.OmitKey,
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     encodeTimestamp,
		EncodeLevel:    func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(fromZapLevel(l).String()) },
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}

// Debug 记录调试日志
func (l *logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info 记录信息日志
func (l *logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn 记录警告日志
func (l *logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error 记录错误日志，err 可为 nil
func (l *logger) Error(msg string, err error, fields ...zap.Field) {
	if ce := l.zap.Check(zapcore.ErrorLevel, msg); ce != nil {
		errFields := ErrorFields(err)
		out := make([]zap.Field, 0, len(fields)+len(errFields))
		out = append(out, fields...)
		ce.Write(append(out, errFields...)...)
	}
}

// DebugContext 记录带 Context 的调试日志
func (l *logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Debug(msg, contextFields(ctx, fields)...)
}

// InfoContext 记录带 Context 的信息日志
func (l *logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Info(msg, contextFields(ctx, fields)...)
}

// WarnContext 记录带 Context 的警告日志
func (l *logger) WarnContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.zap.Warn(msg, contextFields(ctx, fields)...)
}

// ErrorContext 记录带 Context 的错误日志
func (l *logger) ErrorContext(ctx context.Context, msg string, err error, fields ...zap.Field) {
	l.Error(msg, err, contextFields(ctx, fields)...)
}

// LogAPIError 记录接口调用失败
func (l *logger) LogAPIError(ctx context.Context, endpoint string, err error, requestID string) {
	if endpoint == "" {
		endpoint = UnknownEndpoint
	}
	userAgent, pageURL := l.userAgent, ""
	if info, ok := clientFromContext(ctx); ok {
		if info.userAgent != "" {
			userAgent = info.userAgent
		}
		pageURL = info.pageURL
	}
	l.Error("API request failed: "+endpoint, err, contextFields(ctx, []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.String("user_agent", userAgent),
		zap.String("url", pageURL),
	})...)
}

// LogUserAction 记录用户行为，附带用户和会话标识
func (l *logger) LogUserAction(ctx context.Context, action string, details ...zap.Field) {
	if !l.level.Enabled(zapcore.InfoLevel) {
		return
	}
	fields := make([]zap.Field, 0, len(details)+3)
	fields = append(fields, zap.String("action", action))
	fields = append(fields, details...)
	fields = append(fields,
		zap.String("user_id", l.identity.UserID(ctx)),
		zap.String("session_id", l.identity.SessionID(ctx)),
	)
	l.zap.Info("User action: "+action, fields...)
}

// contextFields 从 Context 提取 OpenTelemetry trace_id / span_id
func contextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return fields
	}
	out := make([]zap.Field, 0, len(fields)+2)
	out = append(out, zap.String("trace_id", sc.TraceID().String()), zap.String("span_id", sc.SpanID().String()))
	return append(out, fields...)
}

// With 创建子 Logger
func (l *logger) With(fields ...zap.Field) Logger {
	return &logger{
		zap:       l.zap.With(fields...),
		level:     l.level,
		userAgent: l.userAgent,
		identity:  l.identity,
	}
}

// Sync 刷新缓冲区
func (l *logger) Sync() error {
	return l.zap.Sync()
}

// SetLevel 动态调整阈值
func (l *logger) SetLevel(level Level) {
	l.level.SetLevel(level.toZapLevel())
}

// Level 获取当前阈值
func (l *logger) Level() Level {
	return fromZapLevel(l.level.Level())
}

// httpError 携带 HTTP 响应的错误
type httpError interface {
	error
	HTTPStatus() (code int, body []byte, ok bool)
}

// ErrorFields 把错误展开为日志字段
// 错误链中存在 HTTP 响应时附加 http_status 和 http_data
func ErrorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("error_name", fmt.Sprintf("%T", err)),
		zap.String("error_message", err.Error()),
	}
	var he httpError
	if errors.As(err, &he) {
		if code, body, ok := he.HTTPStatus(); ok {
			fields = append(fields, zap.Int("http_status", code), BodyField("http_data", body))
		}
	}
	return fields
}

// BodyField 把报文体转为日志字段：合法 JSON 原样嵌入，否则记录为字符串
func BodyField(key string, body []byte) zap.Field {
	if len(body) == 0 {
		return zap.Skip()
	}
	if json.Valid(body) {
		return zap.Any(key, json.RawMessage(body))
	}
	return zap.ByteString(key, body)
}
