package config

import "github.com/tokmz/fdbook/pkg/errors"

// 2000 段错误码：配置相关
var (
	// ErrConfigNotFound 配置文件未找到
	ErrConfigNotFound = errors.New(2001, 500, "配置文件未找到", nil)
	// ErrConfigReadFailed 配置读取失败
	ErrConfigReadFailed = errors.New(2002, 500, "配置读取失败", nil)
	// ErrConfigInvalid 配置校验失败
	ErrConfigInvalid = errors.New(2003, 500, "配置校验失败", nil)
)
