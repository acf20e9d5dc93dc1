package tracing

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// 导出器类型
const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
	ExporterNoop   = "noop"
)

// Config 链路追踪配置
type Config struct {
	Enabled          bool              `mapstructure:"enabled"`
	ServiceName      string            `mapstructure:"service_name"`
	ServiceVersion   string            `mapstructure:"service_version"`
	Environment      string            `mapstructure:"environment"`
	ExporterType     string            `mapstructure:"exporter"` // otlp/stdout/noop
	ExporterEndpoint string            `mapstructure:"endpoint"` // OTLP Collector 地址
	ExporterHeaders  map[string]string `mapstructure:"headers"`
	Insecure         bool              `mapstructure:"insecure"`
	SamplingRate     float64           `mapstructure:"sampling_rate"` // 0.0-1.0
	SamplingType     string            `mapstructure:"sampling_type"` // always/never/ratio/parent_based
	BatchTimeout     time.Duration     `mapstructure:"batch_timeout"`
	MaxQueueSize     int               `mapstructure:"max_queue_size"`
}

// DefaultConfig 返回默认配置（默认关闭）
func DefaultConfig() *Config {
	return &Config{
		ServiceName:    "fdbook",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		ExporterType:   ExporterStdout,
		SamplingRate:   1.0,
		SamplingType:   "parent_based",
		BatchTimeout:   5 * time.Second,
		MaxQueueSize:   2048,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ServiceName, validation.Required),
		validation.Field(&c.ExporterType,
			validation.Required,
			validation.In(ExporterOTLP, ExporterStdout, ExporterNoop),
		),
		validation.Field(&c.SamplingRate, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.SamplingType, validation.In("always", "never", "ratio", "parent_based")),
	)
}
