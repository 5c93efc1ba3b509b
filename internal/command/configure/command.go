// Package configure 提供配置查看命令。
package configure

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command"
	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/cfgm"
)

// Command 配置命令
var Command = &cli.Command{
	Name:  "config",
	Usage: "配置相关操作",
	Commands: []*cli.Command{
		{
			Name:   "show",
			Usage:  "以 YAML 输出合并后的最终配置",
			Flags:  command.Flags(),
			Action: showAction,
		},
	},
}

func showAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := cfgm.MarshalYAML(*cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = cmd.Root().Writer.Write(out)

	return err
}
