// Package cmd 实现 fdbook 命令行：页面服务、预约、查询和版本
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// 全局命令行标志
var (
	cfgFile   string // 配置文件路径
	logLevel  string // 日志阈值，覆盖配置
	apiURL    string // 后端接口地址，覆盖配置
	userID    string // 当前用户标识，写入持久存储
	outputFmt string // 输出格式（table/json/yaml）
)

var rootCmd = &cobra.Command{
	Use:   "fdbook",
	Short: "Digital Fixed Deposit System",
	Long: `fdbook 预约定期存款并查看存款列表。

使用示例:
  # 启动页面服务
  fdbook serve --addr :8080

  # 预约一笔定期存款
  fdbook book --user 17 --amount 5000 --tenure 12 --scheme "Tax Saver"

  # 查看存款列表
  fdbook list --user 17 -o json`,
	SilenceUsage: true,
}

// Execute 执行根命令，SIGINT/SIGTERM 时取消命令 Context
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "配置文件路径（默认在 . 和 ./config 中查找 fdbook.yaml）")
	flags.StringVar(&logLevel, "log-level", "", "日志级别 ERROR|WARN|INFO|DEBUG")
	flags.StringVarP(&apiURL, "api-url", "u", "", "后端接口地址")
	flags.StringVar(&userID, "user", "", "用户标识")
	flags.StringVarP(&outputFmt, "output", "o", "table", "输出格式（table、json、yaml）")
}
