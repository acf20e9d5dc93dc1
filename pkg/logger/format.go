package logger

// Format 日志格式
type Format string

const (
	// JSONFormat 单行 JSON（生产环境）
	JSONFormat Format = "json"
	// ConsoleFormat `[timestamp] LEVEL: message` 可读格式（开发环境）
	ConsoleFormat Format = "console"
)

// String 返回格式名称
func (f Format) String() string {
	return string(f)
}

// IsValid 检查格式是否有效
func (f Format) IsValid() bool {
	return f == JSONFormat || f == ConsoleFormat
}
