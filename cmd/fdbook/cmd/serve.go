package cmd

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokmz/fdbook"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the page server",
	Long: `启动页面服务：/book-fd 预约页面，/fd-list 存款列表，其他路径重定向到 /book-fd。

Examples:
  fdbook serve
  FD_APP_MODE=production FD_API_BASE_URL=http://backend:8084/api fdbook serve --addr :9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "监听地址（默认取配置 server.addr）")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.close(closeCtx); err != nil {
			a.log.Error("释放资源失败", err)
		}
	}()

	mode := gin.DebugMode
	if !a.cfg.IsDevelopment() {
		mode = gin.ReleaseMode
	}
	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	e := fdbook.Mount(a.api, a.identity, a.log,
		fdbook.WithMode(mode),
		fdbook.WithAddr(addr),
		fdbook.WithVersion(a.cfg.Info.Version),
		fdbook.WithTracing(a.cfg.Tracing.Enabled),
		fdbook.WithBanner(a.cfg.IsDevelopment()),
	)

	a.log.Info("Digital Fixed Deposit System started",
		zap.String("version", a.cfg.Info.Version),
		zap.String("environment", a.cfg.Info.Mode),
		zap.String("logLevel", a.log.Level().String()),
		zap.String("apiBaseUrl", a.cfg.API.BaseURL),
		zap.String("addr", addr),
	)

	return e.Run(ctx)
}
