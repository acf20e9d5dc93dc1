package request

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request 链式请求构建器，每次调用新建，Do 之后不再复用
type Request struct {
	client    *Client
	method    string
	url       string
	headers   map[string]string
	query     url.Values
	bodyBytes []byte
	ctx       context.Context
	err       error // 延迟错误（SetBody 序列化失败等）
}

func newRequest(c *Client, method, rawURL string) *Request {
	return &Request{
		client:  c,
		method:  method,
		url:     rawURL,
		headers: make(map[string]string),
		query:   make(url.Values),
		ctx:     context.Background(),
	}
}

// SetMethod 设置请求方法
func (r *Request) SetMethod(method string) *Request {
	r.method = method
	return r
}

// SetURL 设置接口路径或完整 URL
func (r *Request) SetURL(url string) *Request {
	r.url = url
	return r
}

// SetHeader 设置请求头
func (r *Request) SetHeader(k, v string) *Request {
	r.headers[k] = v
	return r
}

// SetHeaders 批量设置请求头
func (r *Request) SetHeaders(h map[string]string) *Request {
	for k, v := range h {
		r.headers[k] = v
	}
	return r
}

// SetQuery 设置查询参数
func (r *Request) SetQuery(k, v string) *Request {
	r.query.Set(k, v)
	return r
}

// SetQueryParams 批量设置查询参数
func (r *Request) SetQueryParams(params map[string]string) *Request {
	for k, v := range params {
		r.query.Set(k, v)
	}
	return r
}

// SetBody 设置请求体（自动 JSON 序列化）
func (r *Request) SetBody(body any) *Request {
	data, err := json.Marshal(body)
	if err != nil {
		r.err = ErrMarshal.WithError(err)
		return r
	}
	r.bodyBytes = data
	if _, ok := r.headers["Content-Type"]; !ok {
		r.headers["Content-Type"] = "application/json"
	}
	return r
}

// SetRawBody 设置原始请求体
func (r *Request) SetRawBody(body io.Reader) *Request {
	data, err := io.ReadAll(body)
	if err != nil {
		r.err = ErrMarshal.WithError(err)
		return r
	}
	r.bodyBytes = data
	return r
}

// SetContext 设置请求上下文
func (r *Request) SetContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// Do 执行请求
func (r *Request) Do() (*Response, error) {
	return r.client.execute(r)
}

// endpoint 日志和错误中使用的接口标识：相对路径原样返回，完整 URL 取 path
func (r *Request) endpoint() string {
	if !isAbsolute(r.url) {
		return r.url
	}
	u, err := url.Parse(r.url)
	if err != nil {
		return ""
	}
	return u.Path
}

func isAbsolute(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// buildURL 构建完整 URL
func (r *Request) buildURL(baseURL string) (string, error) {
	rawURL := r.url
	if baseURL != "" && !isAbsolute(rawURL) {
		rawURL = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(rawURL, "/")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL.WithError(err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL.WithMessage("无效的URL: " + rawURL)
	}

	if len(r.query) > 0 {
		q := u.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// buildHTTPRequest 构建 http.Request
func (r *Request) buildHTTPRequest(ctx context.Context, baseURL string, headers map[string]string) (*http.Request, error) {
	fullURL, err := r.buildURL(baseURL)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if r.bodyBytes != nil {
		body = bytes.NewReader(r.bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return nil, ErrInvalidURL.WithError(err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
