package fdbook

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/logger"
	"github.com/tokmz/fdbook/pkg/storage"
)

// LoggerConfig 日志中间件配置
type LoggerConfig struct {
	// Logger 日志实例（必填）
	Logger logger.Logger

	// SkipFunc 跳过日志的函数
	SkipFunc func(c *Context) bool

	// ExcludePaths 排除的路径（不记录日志）
	ExcludePaths []string
}

// Logger 创建日志中间件
// 记录请求方法、路径、客户端 IP、状态码、耗时
func Logger(log logger.Logger, cfgs ...*LoggerConfig) HandlerFunc {
	cfg := &LoggerConfig{Logger: log}
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	}

	skipMap := make(map[string]bool)
	for _, path := range cfg.ExcludePaths {
		skipMap[path] = true
	}

	return func(c *Context) {
		if cfg.SkipFunc != nil && cfg.SkipFunc(c) {
			c.Next()
			return
		}
		if skipMap[c.Request().URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request().URL.Path
		method := c.Request().Method
		clientIP := c.ClientIP()

		c.Next()

		latency := time.Since(start)
		status := c.Writer().Status()
		ctx := c.RequestContext()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", clientIP),
		}

		// 根据状态码选择日志级别
		switch {
		case isUpstreamFailure(status):
			// 接口失败已由 LogAPIError 记录
			cfg.Logger.WarnContext(ctx, "request", fields...)
		case status >= 500:
			cfg.Logger.ErrorContext(ctx, "request", nil, fields...)
		case status >= 400:
			cfg.Logger.WarnContext(ctx, "request", fields...)
		default:
			cfg.Logger.InfoContext(ctx, "request", fields...)
		}
	}
}

// isUpstreamFailure 接口失败映射出的状态码
func isUpstreamFailure(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Recovery 创建 panic 恢复中间件
// panic 时返回统一响应格式（500），并记录错误日志
func Recovery(log logger.Logger) HandlerFunc {
	return func(c *Context) {
		defer func() {
			if err := recover(); err != nil {
				// 客户端主动断开
				if isBrokenPipe(err) {
					log.Error("broken pipe", nil,
						zap.Any("error", err),
						zap.String("path", c.Request().URL.Path),
					)
					c.Abort()
					return
				}

				log.Error("panic recovered", fmt.Errorf("%v", err),
					zap.String("method", c.Request().Method),
					zap.String("path", c.Request().URL.Path),
					zap.String("client_ip", c.ClientIP()),
					zap.String("stack", string(debug.Stack())),
				)

				c.Fail(http.StatusInternalServerError, "Internal Server Error")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// isBrokenPipe 检查是否为断开的连接错误
func isBrokenPipe(err any) bool {
	ne, ok := err.(*net.OpError)
	if !ok {
		return false
	}
	se, ok := ne.Err.(*os.SyscallError)
	if !ok {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}

const (
	// CookieClientID 区分浏览器客户端的 Cookie，决定存储作用域
	CookieClientID = "fd_client"
	// HeaderUserID 上游网关传入的用户标识
	HeaderUserID = "X-User-Id"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientScope 客户端作用域中间件
// 按 fd_client Cookie 隔离存储，向 Context 写入 user agent 和页面 URL，
// 上游带 X-User-Id 时写入持久存储
func ClientScope(identity *storage.Identity, log logger.Logger) HandlerFunc {
	return func(c *Context) {
		clientID, err := c.Cookie(CookieClientID)
		if err != nil || uuid.Validate(clientID) != nil {
			clientID = uuid.NewString()
			c.SetCookie(CookieClientID, clientID, clientCookieMaxAge)
		}
		SetContextClientID(c, clientID)

		req := c.Request()
		ctx := storage.WithScope(req.Context(), clientID)
		ctx = logger.WithClient(ctx, req.UserAgent(), pageURL(req))
		c.SetRequestContext(ctx)

		if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" && identity != nil {
			if err := identity.SetUserID(ctx, userID); err != nil {
				log.WarnContext(ctx, "保存用户标识失败", zap.Error(err))
			}
		}

		c.Next()
	}
}

// Scroll 解析 X-Scroll-Position 并按滚动策略写入 Context
func Scroll() HandlerFunc {
	return func(c *Context) {
		saved, _ := ParseScrollPosition(c.GetHeader(HeaderScrollPosition))
		SetContextScroll(c, ScrollBehavior(saved))
		c.Next()
	}
}

// pageURL 当前页面的完整地址
func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	} else if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
