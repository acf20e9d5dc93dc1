package request

import "context"

type requestIDKey struct{}

type endpointKey struct{}

// RequestIDFromContext 读取当前调用的请求 ID
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// EndpointFromContext 读取当前调用的接口路径
func EndpointFromContext(ctx context.Context) string {
	endpoint, _ := ctx.Value(endpointKey{}).(string)
	return endpoint
}

func withCall(ctx context.Context, requestID, endpoint string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, requestID)
	return context.WithValue(ctx, endpointKey{}, endpoint)
}
