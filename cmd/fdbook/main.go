// fdbook 定期存款预约系统命令行入口
package main

import (
	"os"

	"github.com/tokmz/fdbook/cmd/fdbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
