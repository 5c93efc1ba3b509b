// Package process 提供文件占位符替换命令。
package process

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command"
)

// Command 处理命令
var Command = &cli.Command{
	Name:      "process",
	Usage:     "替换匹配文件中的 ${VAR} / $VAR 占位符并原地写回",
	ArgsUsage: "[pattern...]",
	Flags:     command.Flags(),
	Action:    Action,
}
