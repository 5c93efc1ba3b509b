// Package command 提供 envsubst 的命令行功能。
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/config"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/logger"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/version"
	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/cfgm"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ConfigFlag 显式指定配置文件的 flag 名称。
const ConfigFlag = "config"

// Flags 返回根命令与处理命令共用的 flags。
//
// flag 名称与 config.Config 的 json tag 路径一致，由 cfgm 自动映射。
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "配置文件路径（必须存在）",
		},
		&cli.StringSliceFlag{
			Name:    "patterns",
			Aliases: []string{"p"},
			Value:   Defaults.Patterns,
			Usage:   "待处理文件的 glob 模式，位置参数优先",
		},
		&cli.StringFlag{
			Name:  "env-prefix",
			Value: Defaults.EnvPrefix,
			Usage: "诊断输出中回显的环境变量前缀",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "只统计替换次数，不写回文件",
		},
		&cli.BoolFlag{
			Name:  "atomic",
			Usage: "写入临时文件后重命名覆盖原文件",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 debug/info/warn/error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式 console/text/json/dev/none",
		},
	}
}

// LoadConfig 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(config.EnvPrefix)}
	if path := cmd.String(ConfigFlag); path != "" {
		opts = append(opts, cfgm.WithRequiredFile(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Setup 加载配置并安装默认 logger。
func Setup(_ context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(os.Stderr, logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		NoColor: color.NoColor,
	})
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	slog.SetDefault(l)

	return cfg, nil
}
