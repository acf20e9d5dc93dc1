package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateConfig 文件轮转配置
type RotateConfig struct {
	Filename   string // 日志文件路径
	MaxSize    int    // 单文件最大大小（MB，默认 100MB）
	MaxAge     int    // 文件保留天数（默认 30 天）
	MaxBackups int    // 最多保留文件数（默认 10 个）
	Compress   bool   // 是否压缩
}

func (r *RotateConfig) setDefaults() {
	if r.MaxSize == 0 {
		r.MaxSize = 100
	}
	if r.MaxAge == 0 {
		r.MaxAge = 30
	}
	if r.MaxBackups == 0 {
		r.MaxBackups = 10
	}
}

// SamplingConfig 采样配置
type SamplingConfig struct {
	Initial    int // 每秒前 N 条日志必定记录
	Thereafter int // 之后每 M 条记录 1 条
}

func (s *SamplingConfig) setDefaults() {
	if s.Initial == 0 {
		s.Initial = 100
	}
	if s.Thereafter == 0 {
		s.Thereafter = 100
	}
}

// sink 一组写入目标及其适用的级别
type sink struct {
	writer  zapcore.WriteSyncer
	enabler func(zapcore.Level) bool
}

// buildSinks 构建输出目标
// 控制台模式下 ERROR 写 stderr，其余写 stdout
func buildSinks(config *Config) ([]sink, error) {
	var sinks []sink
	all := func(zapcore.Level) bool { return true }

	if config.Output != nil {
		sinks = append(sinks, sink{writer: zapcore.AddSync(config.Output), enabler: all})
	} else if config.Console {
		sinks = append(sinks,
			sink{
				writer:  zapcore.Lock(os.Stdout),
				enabler: func(l zapcore.Level) bool { return l < zapcore.ErrorLevel },
			},
			sink{
				writer:  zapcore.Lock(os.Stderr),
				enabler: func(l zapcore.Level) bool { return l >= zapcore.ErrorLevel },
			},
		)
	}

	if config.File != "" {
		writer, _, err := zap.Open(config.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.File, err)
		}
		sinks = append(sinks, sink{writer: writer, enabler: all})
	}

	if config.Rotate != nil {
		config.Rotate.setDefaults()
		sinks = append(sinks, sink{
			writer: zapcore.AddSync(&lumberjack.Logger{
				Filename:   config.Rotate.Filename,
				MaxSize:    config.Rotate.MaxSize,
				MaxAge:     config.Rotate.MaxAge,
				MaxBackups: config.Rotate.MaxBackups,
				LocalTime:  true,
				Compress:   config.Rotate.Compress,
			}),
			enabler: all,
		})
	}

	return sinks, nil
}

// buildCore 把 sinks 组合为一个 Core，阈值由 atomic level 控制
func buildCore(config *Config, level zap.AtomicLevel) (zapcore.Core, error) {
	sinks, err := buildSinks(config)
	if err != nil {
		return nil, err
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("no output configured")
	}

	encoder := buildEncoder(config)
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, s := range sinks {
		enabler := s.enabler
		cores = append(cores, zapcore.NewCore(encoder, s.writer, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return level.Enabled(l) && enabler(l)
		})))
	}
	core := zapcore.NewTee(cores...)

	// Hook 在采样之后执行，只看到真正写出的日志
	if len(config.Hooks) > 0 {
		core = &hookCore{Core: core, hooks: config.Hooks}
	}

	if config.Sampling != nil {
		config.Sampling.setDefaults()
		core = zapcore.NewSamplerWithOptions(core, time.Second, config.Sampling.Initial, config.Sampling.Thereafter)
	}
	return core, nil
}
