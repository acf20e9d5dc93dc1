package config

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/tokmz/fdbook/pkg/cache"
	"github.com/tokmz/fdbook/pkg/tracing"
)

// 运行模式
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// EnvPrefix 环境变量前缀，键名中的 . 替换为 _（api.base_url → FD_API_BASE_URL）
const EnvPrefix = "FD"

// App 应用配置，启动时加载一次后传给各组件构造函数
type App struct {
	Info    Info           `mapstructure:"app"`
	Log     Log            `mapstructure:"log"`
	API     API            `mapstructure:"api"`
	Server  Server         `mapstructure:"server"`
	Storage Storage        `mapstructure:"storage"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// Info 应用信息
type Info struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Mode    string `mapstructure:"mode"`
}

// Log 日志配置
type Log struct {
	Level string `mapstructure:"level"` // ERROR|WARN|INFO|DEBUG，未知值按 INFO 处理
	File  string `mapstructure:"file"`  // 轮转日志文件，空则只输出到控制台
}

// API 后端接口配置
type API struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Server 页面服务配置
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Storage 用户/会话标识存储配置
type Storage struct {
	Driver     string            `mapstructure:"driver"` // memory|redis，作用于持久存储
	Redis      cache.RedisConfig `mapstructure:"redis"`
	SessionTTL time.Duration     `mapstructure:"session_ttl"`
}

// IsDevelopment 是否开发模式
func (a *App) IsDevelopment() bool {
	return a.Info.Mode != ModeProduction
}

// appDefaults 默认值，同时让 viper 识别所有可由环境变量覆盖的键
func appDefaults() map[string]any {
	return map[string]any{
		"app.name":               "fdbook",
		"app.version":            "1.0.0",
		"app.mode":               ModeDevelopment,
		"log.level":              "INFO",
		"log.file":               "",
		"api.base_url":           "http://localhost:8084/api",
		"api.timeout":            10 * time.Second,
		"server.addr":            ":8080",
		"storage.driver":         string(cache.DriverMemory),
		"storage.redis.addrs":    []string{"localhost:6379"},
		"storage.redis.password": "",
		"storage.redis.db":       0,
		"storage.session_ttl":    30 * time.Minute,
		"tracing.enabled":        false,
		"tracing.service_name":   "fdbook",
		"tracing.exporter":       tracing.ExporterStdout,
		"tracing.endpoint":       "",
		"tracing.sampling_rate":  1.0,
		"tracing.sampling_type":  "parent_based",
		"tracing.batch_timeout":  5 * time.Second,
		"tracing.max_queue_size": 2048,
	}
}

// LoadApp 加载应用配置：默认值 < 配置文件 < 环境变量
// file 为空时在 . 和 ./config 中查找 fdbook.yaml，找不到不报错
func LoadApp(file string) (*App, *Config, error) {
	opts := []Option{
		WithDefaults(appDefaults()),
		WithEnvPrefix(EnvPrefix),
		WithEnvKeyReplacer(strings.NewReplacer(".", "_")),
	}
	if file != "" {
		opts = append(opts, WithConfigFile(file))
	} else {
		opts = append(opts,
			WithConfigName("fdbook"),
			WithConfigType("yaml"),
			WithConfigPaths(".", "./config"),
			WithOptional(true),
		)
	}

	c := New(opts...)
	if err := c.Load(); err != nil {
		return nil, nil, err
	}

	app, err := c.App()
	if err != nil {
		return nil, nil, err
	}
	return app, c, nil
}

// App 反序列化并校验应用配置
func (c *Config) App() (*App, error) {
	var app App
	if err := c.Unmarshal(&app); err != nil {
		return nil, ErrConfigReadFailed.WithError(err)
	}
	app.Tracing.ServiceVersion = app.Info.Version
	app.Tracing.Environment = app.Info.Mode
	if err := app.Validate(); err != nil {
		return nil, ErrConfigInvalid.WithError(err)
	}
	return &app, nil
}

// Validate 校验应用配置
func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Info),
		validation.Field(&a.API),
		validation.Field(&a.Server),
		validation.Field(&a.Storage),
		validation.Field(&a.Tracing, validation.Skip.When(!a.Tracing.Enabled)),
	)
}

// Validate 校验应用信息
func (i Info) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Version, validation.Required),
		validation.Field(&i.Mode, validation.Required, validation.In(ModeDevelopment, ModeProduction)),
	)
}

// Validate 校验接口配置
func (a API) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BaseURL, validation.Required, is.URL),
		validation.Field(&a.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

// Validate 校验服务配置
func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
	)
}

// Validate 校验存储配置
func (s Storage) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(string(cache.DriverMemory), string(cache.DriverRedis))),
		validation.Field(&s.Redis, validation.When(s.Driver == string(cache.DriverRedis), validation.By(func(value any) error {
			rc, _ := value.(cache.RedisConfig)
			return validation.Validate(rc.Addrs, validation.Required.Error("redis addrs is required"))
		}))),
		validation.Field(&s.SessionTTL, validation.Min(time.Duration(0))),
	)
}
