package request

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/logger"
)

// Interceptor 拦截器接口
type Interceptor interface {
	// BeforeRequest 请求发送前调用，返回错误会中止本次调用
	BeforeRequest(ctx context.Context, req *http.Request) error
	// AfterResponse 2xx 响应返回后调用
	AfterResponse(ctx context.Context, resp *Response) error
	// OnError 调用失败时调用，每次失败的调用恰好一次
	OnError(ctx context.Context, err *Error)
}

// loggingInterceptor 日志拦截器
type loggingInterceptor struct {
	log Logger
}

// NewLoggingInterceptor 创建日志拦截器
func NewLoggingInterceptor(log Logger) Interceptor {
	return &loggingInterceptor{log: log}
}

func (l *loggingInterceptor) BeforeRequest(ctx context.Context, req *http.Request) error {
	l.log.DebugContext(ctx, "API Request",
		zap.String("method", req.Method),
		zap.String("url", EndpointFromContext(ctx)),
		zap.String("request_id", RequestIDFromContext(ctx)),
		zap.Any("params", req.URL.Query()),
		logger.BodyField("data", requestBody(req)),
	)
	return nil
}

func (l *loggingInterceptor) AfterResponse(ctx context.Context, resp *Response) error {
	l.log.DebugContext(ctx, "API Response",
		zap.Int("status", resp.StatusCode),
		zap.String("url", resp.Endpoint),
		zap.Duration("duration", resp.Duration),
		logger.BodyField("data", resp.Body),
	)
	return nil
}

func (l *loggingInterceptor) OnError(ctx context.Context, err *Error) {
	l.log.LogAPIError(ctx, err.Endpoint, err, err.RequestID)
}

// requestBody 通过 GetBody 读取请求体副本，不消费原始 Body
func requestBody(req *http.Request) []byte {
	if req.GetBody == nil {
		return nil
	}
	rc, err := req.GetBody()
	if err != nil {
		return nil
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	return data
}
