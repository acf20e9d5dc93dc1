package fdbook

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterGroup 路由组
type RouterGroup struct {
	group *gin.RouterGroup
}

// Group 创建子路由组
func (rg *RouterGroup) Group(path string, middlewares ...HandlerFunc) *RouterGroup {
	return &RouterGroup{
		group: rg.group.Group(path, WrapMiddlewares(middlewares...)...),
	}
}

// Use 注册中间件
func (rg *RouterGroup) Use(middlewares ...HandlerFunc) {
	rg.group.Use(WrapMiddlewares(middlewares...)...)
}

// handle 注册路由，中间件在处理函数之前执行
func (rg *RouterGroup) handle(method, path string, handler HandlerFunc, middlewares []HandlerFunc) {
	handlers := append(WrapMiddlewares(middlewares...), WrapHandler(handler))
	rg.group.Handle(method, path, handlers...)
}

// GET 注册 GET 路由
func (rg *RouterGroup) GET(path string, handler HandlerFunc, middlewares ...HandlerFunc) {
	rg.handle(http.MethodGet, path, handler, middlewares)
}

// POST 注册 POST 路由
func (rg *RouterGroup) POST(path string, handler HandlerFunc, middlewares ...HandlerFunc) {
	rg.handle(http.MethodPost, path, handler, middlewares)
}

// Any 注册所有 HTTP 方法的路由
func (rg *RouterGroup) Any(path string, handler HandlerFunc, middlewares ...HandlerFunc) {
	rg.group.Any(path, append(WrapMiddlewares(middlewares...), WrapHandler(handler))...)
}

// ============ 泛型路由（自动绑定 + 自动响应）============

// RouteRegister 路由注册函数类型
type RouteRegister func(path string, handler HandlerFunc, middlewares ...HandlerFunc)

// Handle 有请求参数，有响应数据
func Handle[Req any, Resp any](register RouteRegister, path string, handler func(*Context, *Req) (*Resp, error), middlewares ...HandlerFunc) {
	wrappedHandler := func(c *Context) {
		var req Req
		if err := autoBind(c, &req); err != nil {
			c.RespondError(err)
			return
		}
		resp, err := handler(c, &req)
		if err != nil {
			c.RespondError(err)
			return
		}
		c.Success(resp)
	}
	register(path, wrappedHandler, middlewares...)
}

// HandleOnly 无请求参数，有响应数据
func HandleOnly[Resp any](register RouteRegister, path string, handler func(*Context) (*Resp, error), middlewares ...HandlerFunc) {
	wrappedHandler := func(c *Context) {
		resp, err := handler(c)
		if err != nil {
			c.RespondError(err)
			return
		}
		c.Success(resp)
	}
	register(path, wrappedHandler, middlewares...)
}

// autoBind 根据请求方法自动选择绑定策略
func autoBind(c *Context, obj any) error {
	switch c.Request().Method {
	case http.MethodGet, http.MethodDelete:
		if err := c.ShouldBindQuery(obj); err != nil {
			return c.wrapBindError(err)
		}
		return nil
	default:
		// 根据 Content-Type 选择 JSON 或表单
		if err := c.ShouldBind(obj); err != nil {
			return c.wrapBindError(err)
		}
		return nil
	}
}
