package fdbook

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/logger"
	"github.com/tokmz/fdbook/pkg/tracing"
)

// Engine 页面服务
type Engine struct {
	config *Config
	engine *gin.Engine
	server *http.Server
	log    logger.Logger
}

// New 创建一个新的 Engine 实例，使用 Options 模式配置
func New(opts ...Option) *Engine {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	// gin.SetMode 是全局操作，只在首次或显式指定非 debug 时设置
	if gin.Mode() == gin.DebugMode || config.Mode != gin.DebugMode {
		gin.SetMode(config.Mode)
	}

	// 静默 Gin 默认输出，由 Engine 自行打印
	silenceGin()

	log := config.Logger
	if log == nil {
		log = logger.NewNop()
	}

	ginEngine := gin.New()
	ginEngine.Use(WrapMiddleware(Recovery(log)))

	if config.TrustedProxies != nil {
		if err := ginEngine.SetTrustedProxies(config.TrustedProxies); err != nil {
			log.Warn("设置信任代理失败", zap.Error(err))
		}
	}

	if config.Tracing {
		ginEngine.Use(tracing.Middleware())
	}

	return &Engine{
		engine: ginEngine,
		config: config,
		log:    log,
	}
}

// Use 注册全局中间件
func (e *Engine) Use(middlewares ...HandlerFunc) {
	e.engine.Use(WrapMiddlewares(middlewares...)...)
}

// Group 返回路由组
func (e *Engine) Group(path string) *RouterGroup {
	return &RouterGroup{
		group: e.engine.Group(path),
	}
}

// RouterGroup 返回根路由组
func (e *Engine) RouterGroup() *RouterGroup {
	return &RouterGroup{
		group: &e.engine.RouterGroup,
	}
}

// NoRoute 注册未匹配路由的处理函数
func (e *Engine) NoRoute(handler HandlerFunc) {
	e.engine.NoRoute(WrapHandler(handler))
}

// Handler 返回 http.Handler（测试或嵌入其他服务时使用）
func (e *Engine) Handler() http.Handler {
	return e.engine
}

// Run 启动 HTTP 服务器，收到 SIGINT/SIGTERM 或 ctx 结束时优雅关机
func (e *Engine) Run(ctx context.Context, addr ...string) error {
	address := e.config.Server.Addr
	if len(addr) > 0 && addr[0] != "" {
		address = addr[0]
	}

	e.server = &http.Server{
		Addr:           address,
		Handler:        e.engine,
		ReadTimeout:    e.config.Server.ReadTimeout,
		WriteTimeout:   e.config.Server.WriteTimeout,
		IdleTimeout:    e.config.Server.IdleTimeout,
		MaxHeaderBytes: e.config.Server.MaxHeaderBytes,
	}

	if e.config.Banner {
		e.printBanner(os.Stdout, address)
	}

	return e.serve(ctx)
}

// serve 启动服务并等待关机
func (e *Engine) serve(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case <-quit:
	case <-ctx.Done():
	}
	e.log.Info("正在关闭服务器...")

	return e.gracefulShutdown()
}

// gracefulShutdown 执行优雅关机流程
func (e *Engine) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), e.config.Shutdown.Timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.log.Error("服务器强制关闭", err)
		return err
	}

	e.log.Info("服务器已退出")
	return nil
}

// Shutdown 手动关闭服务器
func (e *Engine) Shutdown(ctx context.Context) error {
	if e.server == nil {
		return nil
	}

	if e.config.Shutdown.BeforeShutdown != nil {
		e.config.Shutdown.BeforeShutdown()
	}

	err := e.server.Shutdown(ctx)

	if e.config.Shutdown.AfterShutdown != nil {
		e.config.Shutdown.AfterShutdown()
	}

	return err
}
