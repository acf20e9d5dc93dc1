package fdbook

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
)

// banner ASCII Art
const banner = `
 ███████╗██████╗     Digital Fixed Deposit System
 ██╔════╝██╔══██╗    预约定期存款、查看存款列表
 █████╗  ██║  ██║    open: %s
 ██╔══╝  ██║  ██║    version: %s
 ██║     ██████╔╝
 ╚═╝     ╚═════╝
`

// printBanner 打印启动 banner 和路由表
func (e *Engine) printBanner(out io.Writer, addr string) {
	var open string
	if strings.HasPrefix(addr, ":") {
		open = "http://127.0.0.1" + addr
	} else if strings.Contains(addr, ":") {
		open = "http://" + addr
	} else {
		open = "http://127.0.0.1:" + addr
	}

	fPrint(out, banner, open, e.config.Version)
	fPrint(out, "\n")

	routes := e.engine.Routes()
	if len(routes) > 0 {
		printRoutes(out, routes, e.config.Mode)
		fPrint(out, "\n")
	}

	mode := e.config.Mode
	if mode == gin.DebugMode {
		fPrint(out, "[FD] Running in \"%s\" mode. Switch to \"release\" mode in production.\n", mode)
	} else {
		fPrint(out, "[FD] Running in \"%s\" mode.\n", mode)
	}
	fPrint(out, "[FD] Go version: %s | OS: %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fPrint(out, "[FD] Listening on %s\n", addr)
}

// methodColor 根据 HTTP 方法返回 ANSI 颜色码
func methodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // 蓝色
	case "POST":
		return "\033[32m" // 绿色
	default:
		return "\033[0m"
	}
}

const resetColor = "\033[0m"

// printRoutes 格式化打印路由表
func printRoutes(out io.Writer, routes gin.RoutesInfo, mode string) {
	maxPathLen := 0
	for _, r := range routes {
		if len(r.Path) > maxPathLen {
			maxPathLen = len(r.Path)
		}
	}

	for _, r := range routes {
		fPrint(out, "[FD-%s] %s %-7s %s %-*s --> %s\n",
			mode,
			methodColor(r.Method), r.Method, resetColor,
			maxPathLen, r.Path,
			r.Handler)
	}
}

// silenceGin 静默 Gin 的默认输出
func silenceGin() {
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard
}

// fPrint 打印到 writer，忽略错误（banner 输出场景）
func fPrint(out io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(out, format, a...)
}
