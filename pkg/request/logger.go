package request

import (
	"context"

	"go.uber.org/zap"
)

// Logger 日志接口，pkg/logger.Logger 满足该接口
type Logger interface {
	// DebugContext 记录请求/响应明细
	DebugContext(ctx context.Context, msg string, fields ...zap.Field)
	// LogAPIError 记录失败调用
	LogAPIError(ctx context.Context, endpoint string, err error, requestID string)
}
