package fdbook

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tokmz/fdbook/pkg/errors"
	"github.com/tokmz/fdbook/pkg/tracing"
)

// Context 包装 gin.Context，提供页面处理需要的 API
type Context struct {
	ctx *gin.Context
}

// newContext 创建新的上下文
func newContext(c *gin.Context) *Context {
	return &Context{ctx: c}
}

// NewContext 创建新的上下文（公开方法，用于测试）
func NewContext(c *gin.Context) *Context {
	return &Context{ctx: c}
}

// ============ Gin Context 访问方法 ============

// Request 返回底层的 *http.Request
func (c *Context) Request() *http.Request {
	return c.ctx.Request
}

// Writer 返回底层的 http.ResponseWriter
func (c *Context) Writer() gin.ResponseWriter {
	return c.ctx.Writer
}

// FullPath 获取路由模板路径
func (c *Context) FullPath() string {
	return c.ctx.FullPath()
}

// Query 获取 URL 查询参数
func (c *Context) Query(key string) string {
	return c.ctx.Query(key)
}

// GetQuery 获取 URL 查询参数（返回是否存在）
func (c *Context) GetQuery(key string) (string, bool) {
	return c.ctx.GetQuery(key)
}

// ShouldBind 绑定请求参数（根据 Content-Type 自动选择，不自动响应错误）
func (c *Context) ShouldBind(obj any) error {
	return c.ctx.ShouldBind(obj)
}

// ShouldBindQuery 绑定 URL 查询参数（不自动响应错误）
func (c *Context) ShouldBindQuery(obj any) error {
	return c.ctx.ShouldBindQuery(obj)
}

// JSON 发送 JSON 响应
func (c *Context) JSON(code int, obj any) {
	c.ctx.JSON(code, obj)
}

// Redirect 重定向
func (c *Context) Redirect(code int, location string) {
	c.ctx.Redirect(code, location)
}

// Set 设置上下文键值对
func (c *Context) Set(key string, value any) {
	c.ctx.Set(key, value)
}

// Get 获取上下文键值对
func (c *Context) Get(key string) (any, bool) {
	return c.ctx.Get(key)
}

// GetString 获取字符串类型的上下文值
func (c *Context) GetString(key string) string {
	return c.ctx.GetString(key)
}

// Next 执行下一个中间件或处理函数
func (c *Context) Next() {
	c.ctx.Next()
}

// Abort 中止请求处理
func (c *Context) Abort() {
	c.ctx.Abort()
}

// IsAborted 检查请求是否已中止
func (c *Context) IsAborted() bool {
	return c.ctx.IsAborted()
}

// ClientIP 获取客户端 IP
func (c *Context) ClientIP() string {
	return c.ctx.ClientIP()
}

// GetHeader 获取请求头
func (c *Context) GetHeader(key string) string {
	return c.ctx.GetHeader(key)
}

// Header 设置响应头
func (c *Context) Header(key, value string) {
	c.ctx.Header(key, value)
}

// Cookie 读取 Cookie
func (c *Context) Cookie(name string) (string, error) {
	return c.ctx.Cookie(name)
}

// SetCookie 写入 Cookie（HttpOnly，SameSite=Lax）
func (c *Context) SetCookie(name, value string, maxAge int) {
	c.ctx.SetSameSite(http.SameSiteLaxMode)
	c.ctx.SetCookie(name, value, maxAge, "/", "", c.ctx.Request.TLS != nil, true)
}

// ============ 请求绑定方法 ============

// Bind 绑定请求参数，失败时自动响应错误
func (c *Context) Bind(obj any) error {
	if err := c.ctx.ShouldBind(obj); err != nil {
		wrappedErr := c.wrapBindError(err)
		c.RespondError(wrappedErr)
		return wrappedErr
	}
	return nil
}

// wrapBindError 包装绑定错误
func (c *Context) wrapBindError(err error) error {
	return errors.ErrBadRequest.WithError(err)
}

// ============ 响应方法 ============

// Success 成功响应
func (c *Context) Success(data any) {
	c.respond(http.StatusOK, Success(data))
}

// Fail 失败响应
func (c *Context) Fail(code int, message string) {
	c.respond(code, Fail(code, message))
}

// RespondError 错误响应
// 后端接口失败按分类映射：HTTP 状态错误 502，超时 504，网络不可达 503
func (c *Context) RespondError(err error) {
	var bizErr *errors.Error
	if errors.As(err, &bizErr) {
		resp := NewResponse(bizErr.Code, nil, bizErr.Message)
		// 校验失败时返回字段错误
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			resp.Data = fieldErrs
		}
		c.respond(bizErr.HttpCode, resp)
		return
	}

	message := errors.ErrServer.Message
	if err != nil {
		message = err.Error()
	}
	c.respond(errors.ErrServer.HttpCode, NewResponse(errors.ErrServer.Code, nil, message))
}

// respond 统一响应处理（自动添加 TraceID）
func (c *Context) respond(statusCode int, resp *Response) {
	traceID := GetContextTraceID(c)
	if traceID == "" {
		traceID = tracing.TraceID(c.ctx.Request.Context())
	}
	if traceID != "" {
		resp.WithTraceID(traceID)
	}
	c.JSON(statusCode, resp)
}

// RequestContext 返回标准库 context.Context，用于传递给接口层
func (c *Context) RequestContext() context.Context {
	return c.ctx.Request.Context()
}

// SetRequestContext 更新 Request 的 Context
func (c *Context) SetRequestContext(ctx context.Context) {
	c.ctx.Request = c.ctx.Request.WithContext(ctx)
}
