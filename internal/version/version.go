// Package version 提供构建信息与 version 子命令。
//
// 构建时通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/261019-go-pkg-envsubst/internal/version.Version=v1.0.0"
package version

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，用于默认配置路径与环境变量前缀。
const AppRawName = "envsubst"

// 构建信息，由 ldflags 覆盖。
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// GetVersion 返回版本号。
func GetVersion() string {
	return Version
}

// Command version 子命令
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s (commit %s, built %s, %s/%s)\n",
			AppRawName, Version, Commit, BuildTime, runtime.GOOS, runtime.GOARCH)

		return err
	},
}
