package tracing

import (
	"os"

	"go.opentelemetry.io/otel/sdk/trace"
)

// samplerOptions 根据配置选择采样器
// 设置了 OTEL_TRACES_SAMPLER 时不覆盖，由 SDK 按环境变量创建
func samplerOptions(cfg *Config) []trace.TracerProviderOption {
	if os.Getenv("OTEL_TRACES_SAMPLER") != "" {
		return nil
	}
	return []trace.TracerProviderOption{trace.WithSampler(newSampler(cfg))}
}

func newSampler(cfg *Config) trace.Sampler {
	switch cfg.SamplingType {
	case "always":
		return trace.AlwaysSample()
	case "never":
		return trace.NeverSample()
	case "ratio":
		return trace.TraceIDRatioBased(cfg.SamplingRate)
	default:
		return trace.ParentBased(trace.TraceIDRatioBased(cfg.SamplingRate))
	}
}
