package fdbook

const (
	// ContextTraceIDKey 链路追踪trace_id键
	ContextTraceIDKey = "trace_id"
	// ContextClientIDKey 客户端标识键（fd_client Cookie）
	ContextClientIDKey = "client_id"
	// ContextScrollKey 本次导航的滚动位置键
	ContextScrollKey = "scroll"
)

// GetContextTraceID 获取上下文链路追踪trace_id
func GetContextTraceID(ctx *Context) string {
	return ctx.GetString(ContextTraceIDKey)
}

// SetContextTraceID 设置上下文链路追踪trace_id
func SetContextTraceID(ctx *Context, traceID string) {
	ctx.Set(ContextTraceIDKey, traceID)
}

// GetContextClientID 获取客户端标识
func GetContextClientID(ctx *Context) string {
	return ctx.GetString(ContextClientIDKey)
}

// SetContextClientID 设置客户端标识
func SetContextClientID(ctx *Context, clientID string) {
	ctx.Set(ContextClientIDKey, clientID)
}

// GetContextScroll 获取本次导航的滚动位置，未设置时为页面顶部
func GetContextScroll(ctx *Context) ScrollPosition {
	if v, ok := ctx.Get(ContextScrollKey); ok {
		if pos, ok := v.(ScrollPosition); ok {
			return pos
		}
	}
	return ScrollPosition{}
}

// SetContextScroll 设置本次导航的滚动位置
func SetContextScroll(ctx *Context, pos ScrollPosition) {
	ctx.Set(ContextScrollKey, pos)
}
