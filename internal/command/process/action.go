package process

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/internal/batch"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/command"
)

// Action 加载配置并执行批处理。
//
// 单个文件失败不影响退出码；仅配置错误或模式展开失败返回 error。
func Action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.Setup(ctx, cmd)
	if err != nil {
		return err
	}

	patterns := cfg.ResolvePatterns(cmd.Args().Slice())
	slog.Debug("Resolved configuration",
		"patterns", patterns,
		"envPrefix", cfg.EnvPrefix,
		"dryRun", cfg.DryRun,
		"atomic", cfg.Atomic,
	)

	p := batch.New(
		batch.WithOutput(cmd.Root().Writer),
		batch.WithEnvPrefix(cfg.EnvPrefix),
		batch.WithDryRun(cfg.DryRun),
		batch.WithAtomicWrite(cfg.Atomic),
	)

	report, err := p.Run(patterns)
	if err != nil {
		return err
	}
	if report.Failed() > 0 {
		slog.Warn("Some files failed to process", "failed", report.Failed(), "total", report.Files())
	}

	return nil
}
