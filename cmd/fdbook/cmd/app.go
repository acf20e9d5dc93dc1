package cmd

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tokmz/fdbook/pkg/cache"
	"github.com/tokmz/fdbook/pkg/config"
	"github.com/tokmz/fdbook/pkg/fdapi"
	"github.com/tokmz/fdbook/pkg/logger"
	"github.com/tokmz/fdbook/pkg/request"
	"github.com/tokmz/fdbook/pkg/storage"
	"github.com/tokmz/fdbook/pkg/tracing"
)

// app 命令运行时依赖，启动时组装一次
type app struct {
	cfg      *config.App
	log      logger.Logger
	identity *storage.Identity
	api      *fdapi.API
	closers  []func(context.Context) error
}

// newApp 加载配置并按依赖顺序组装：存储 → 日志 → 追踪 → 接口客户端
func newApp(ctx context.Context) (*app, error) {
	cfg, _, err := config.LoadApp(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	a := &app{cfg: cfg}

	local, err := newLocalCache(cfg)
	if err != nil {
		return nil, err
	}
	session := cache.NewMemory()
	a.closers = append(a.closers,
		func(context.Context) error { return local.Close() },
		func(context.Context) error { return session.Close() },
	)
	a.identity = storage.NewIdentity(
		storage.NewLocal(local),
		storage.NewSession(session, cfg.Storage.SessionTTL),
	)

	a.log, err = newLogger(cfg, a.identity)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	// 控制台输出 Sync 可能返回 EINVAL，忽略
	a.closers = append(a.closers, func(context.Context) error { _ = a.log.Sync(); return nil })

	shutdown, err := tracing.Setup(ctx, &cfg.Tracing)
	if err != nil {
		a.close(ctx)
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	client := request.New(
		request.WithBaseURL(cfg.API.BaseURL),
		request.WithTimeout(cfg.API.Timeout),
		request.WithUserAgent(userAgent(cfg)),
		request.WithLogger(a.log),
		request.WithTracing(cfg.Tracing.Enabled),
	)
	a.api = fdapi.New(client)

	if userID != "" {
		if err := a.identity.SetUserID(ctx, userID); err != nil {
			a.log.Warn("保存用户标识失败", zap.Error(err))
		}
	}
	return a, nil
}

// newLocalCache 持久存储：配置 redis 时使用 redis，否则进程内存
func newLocalCache(cfg *config.App) (cache.Cache, error) {
	if cfg.Storage.Driver != string(cache.DriverRedis) {
		return cache.NewMemory(), nil
	}
	redisCfg := cache.DefaultRedisConfig()
	redisCfg.Addrs = cfg.Storage.Redis.Addrs
	redisCfg.MasterName = cfg.Storage.Redis.MasterName
	redisCfg.Username = cfg.Storage.Redis.Username
	redisCfg.Password = cfg.Storage.Redis.Password
	redisCfg.DB = cfg.Storage.Redis.DB
	if cfg.Storage.Redis.PoolSize > 0 {
		redisCfg.PoolSize = cfg.Storage.Redis.PoolSize
	}
	return cache.NewWithOptions(
		cache.WithRedis(redisCfg),
		cache.WithKeyPrefix("fdbook:"),
	)
}

// newLogger 开发模式输出可读单行，生产模式输出 JSON；配置文件时同时写入轮转文件
func newLogger(cfg *config.App, identity logger.Identity) (logger.Logger, error) {
	opts := []logger.Option{
		logger.WithLevelName(cfg.Log.Level),
		logger.WithDevelopment(cfg.IsDevelopment()),
		logger.WithConsoleOutput(),
		logger.WithUserAgent(userAgent(cfg)),
		logger.WithIdentity(identity),
	}
	if cfg.Log.File != "" {
		opts = append(opts, logger.WithRotateOutput(&logger.RotateConfig{Filename: cfg.Log.File, Compress: true}))
	}
	return logger.NewWithOptions(opts...)
}

func userAgent(cfg *config.App) string {
	return cfg.Info.Name + "/" + cfg.Info.Version
}

// close 逆序释放资源
func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
