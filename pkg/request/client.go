package request

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID 请求 ID 请求头
const HeaderRequestID = "X-Request-ID"

// Client HTTP 客户端，可并发使用
type Client struct {
	cfg    *Config
	client *http.Client
}

// New 创建 HTTP 客户端
func New(opts ...Option) *Client {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig 使用配置创建 HTTP 客户端
func NewWithConfig(cfg *Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := cfg.buildTransport()

	// 启用追踪时包装 Transport
	if cfg.EnableTracing {
		transport = newTracingTransport(transport)
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// BaseURL 返回基础 URL
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Get 创建 GET 请求
func (c *Client) Get(endpoint string) *Request {
	return newRequest(c, http.MethodGet, endpoint)
}

// Post 创建 POST 请求
func (c *Client) Post(endpoint string) *Request {
	return newRequest(c, http.MethodPost, endpoint)
}

// Put 创建 PUT 请求
func (c *Client) Put(endpoint string) *Request {
	return newRequest(c, http.MethodPut, endpoint)
}

// Patch 创建 PATCH 请求
func (c *Client) Patch(endpoint string) *Request {
	return newRequest(c, http.MethodPatch, endpoint)
}

// Delete 创建 DELETE 请求
func (c *Client) Delete(endpoint string) *Request {
	return newRequest(c, http.MethodDelete, endpoint)
}

// Head 创建 HEAD 请求
func (c *Client) Head(endpoint string) *Request {
	return newRequest(c, http.MethodHead, endpoint)
}

// R 创建通用请求构建器（需通过 SetMethod/SetURL 设置）
func (c *Client) R(ctx context.Context) *Request {
	return newRequest(c, "", "").SetContext(ctx)
}

// mergeHeaders 合并全局 header 和请求 header（请求级优先），返回新 map
func (c *Client) mergeHeaders(reqHeaders map[string]string) map[string]string {
	merged := make(map[string]string, len(c.cfg.Headers)+len(reqHeaders)+1)
	if c.cfg.UserAgent != "" {
		merged["User-Agent"] = c.cfg.UserAgent
	}
	for k, v := range c.cfg.Headers {
		merged[k] = v
	}
	for k, v := range reqHeaders {
		merged[k] = v
	}
	return merged
}

// execute 执行一次调用，不重试
// 成功返回 2xx 响应；任何失败都先经过 OnError，再以 *Error 返回
func (c *Client) execute(r *Request) (*Response, error) {
	requestID := uuid.NewString()
	endpoint := r.endpoint()
	ctx := withCall(r.ctx, requestID, endpoint)

	fail := func(kind Kind, err error) *Error {
		return &Error{Kind: kind, Method: r.method, Endpoint: endpoint, RequestID: requestID, Err: err}
	}

	if r.err != nil {
		return nil, c.onError(ctx, fail(KindInterceptor, r.err))
	}

	merged := c.mergeHeaders(r.headers)
	merged[HeaderRequestID] = requestID

	httpReq, err := r.buildHTTPRequest(ctx, c.cfg.BaseURL, merged)
	if err != nil {
		return nil, c.onError(ctx, fail(KindInterceptor, err))
	}

	// 执行 BeforeRequest 拦截器
	for _, interceptor := range c.cfg.Interceptors {
		if err := interceptor.BeforeRequest(ctx, httpReq); err != nil {
			return nil, c.onError(ctx, fail(KindInterceptor, err))
		}
	}

	// 发送请求
	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, c.onError(ctx, fail(classify(err), err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, c.onError(ctx, fail(classify(err), err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Endpoint:   endpoint,
		RequestID:  requestID,
		Headers:    httpResp.Header,
		Body:       body,
		Duration:   duration,
		Request:    httpReq,
	}

	if !resp.IsSuccess() {
		e := fail(KindHTTPStatus, nil)
		e.StatusCode = resp.StatusCode
		e.Body = resp.Body
		return nil, c.onError(ctx, e)
	}

	// 执行 AfterResponse 拦截器
	for _, interceptor := range c.cfg.Interceptors {
		if err := interceptor.AfterResponse(ctx, resp); err != nil {
			return nil, c.onError(ctx, fail(KindInterceptor, err))
		}
	}

	return resp, nil
}

// onError 通知所有拦截器后返回错误
func (c *Client) onError(ctx context.Context, err *Error) error {
	for _, interceptor := range c.cfg.Interceptors {
		interceptor.OnError(ctx, err)
	}
	return err
}

// classify 区分超时与其他传输层失败
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
