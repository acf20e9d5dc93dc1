package errors

/*
	内置常用错误码
*/

var (
	// ErrServer 服务器错误
	ErrServer = New(1000, 500, "服务器异常", nil)
	// ErrBadRequest 客户端请求错误
	ErrBadRequest = New(1001, 400, "请求异常", nil)
	// ErrNotFound 资源不存在
	ErrNotFound = New(1004, 404, "资源不存在", nil)
	// ErrBadGateway 上游服务异常
	ErrBadGateway = New(1005, 502, "上游服务异常", nil)
	// ErrServiceUnavailable 上游服务不可达
	ErrServiceUnavailable = New(1006, 503, "上游服务不可达", nil)
	// ErrGatewayTimeout 上游服务超时
	ErrGatewayTimeout = New(1007, 504, "上游服务超时", nil)
)
