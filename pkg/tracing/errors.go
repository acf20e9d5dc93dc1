package tracing

import "github.com/tokmz/fdbook/pkg/errors"

// ErrInvalidConfig 追踪配置无效
var ErrInvalidConfig = errors.New(6001, 500, "tracing config invalid", nil)
