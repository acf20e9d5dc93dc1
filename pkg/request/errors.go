package request

import (
	"fmt"
	"net/http"

	"github.com/tokmz/fdbook/pkg/errors"
)

// 4000 段错误码：HTTP 客户端相关
var (
	// ErrInterceptor 请求构建或拦截器失败
	ErrInterceptor = errors.New(4001, 500, "请求构建失败", nil)
	// ErrNetwork 网络不可达
	ErrNetwork = errors.New(4002, 503, "网络请求失败", nil)
	// ErrTimeout 请求超时
	ErrTimeout = errors.New(4003, 504, "请求超时", nil)
	// ErrHTTPStatus 非 2xx 响应
	ErrHTTPStatus = errors.New(4004, 502, "接口返回错误状态", nil)
	// ErrMarshal 序列化失败
	ErrMarshal = errors.New(4005, 500, "序列化失败", nil)
	// ErrUnmarshal 反序列化失败
	ErrUnmarshal = errors.New(4006, 500, "反序列化失败", nil)
	// ErrInvalidURL 无效的 URL
	ErrInvalidURL = errors.New(4007, 400, "无效的URL", nil)
)

// Kind 失败分类
type Kind int

const (
	KindInterceptor Kind = iota + 1 // 请求构建或拦截器返回错误
	KindNetwork                     // 传输层失败
	KindTimeout                     // 超时
	KindHTTPStatus                  // 非 2xx 响应
)

func (k Kind) String() string {
	switch k {
	case KindInterceptor:
		return "interceptor"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInterceptor:
		return ErrInterceptor
	case KindNetwork:
		return ErrNetwork
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrHTTPStatus
	}
}

// Error 一次失败调用的完整信息
// StatusCode/Body 仅在 KindHTTPStatus 时有值，Err 为原始错误且不会被修改
type Error struct {
	Kind       Kind
	Method     string
	Endpoint   string
	RequestID  string
	StatusCode int
	Body       []byte
	Err        error
}

const maxErrorBodyLen = 512

func (e *Error) Error() string {
	target := e.Method + " " + e.Endpoint
	if e.Kind == KindHTTPStatus {
		body := e.Body
		if len(body) > maxErrorBodyLen {
			body = body[:maxErrorBodyLen]
		}
		return fmt.Sprintf("%s: HTTP %d %s: %s", target, e.StatusCode, http.StatusText(e.StatusCode), body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", target, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", target, e.Kind)
}

// Unwrap 同时暴露分类哨兵和原始错误
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// HTTPStatus 返回响应状态码与响应体，仅 KindHTTPStatus 时 ok 为 true
func (e *Error) HTTPStatus() (int, []byte, bool) {
	if e.Kind != KindHTTPStatus {
		return 0, nil, false
	}
	return e.StatusCode, e.Body, true
}
