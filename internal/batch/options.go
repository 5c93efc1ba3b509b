package batch

import (
	"io"
	"log/slog"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

// options 处理器选项。
type options struct {
	env       subst.Env
	out       io.Writer
	logger    *slog.Logger
	envPrefix string
	dryRun    bool
	atomic    bool
	color     *bool // nil 表示跟随终端检测
}

// Option 处理器选项函数。
type Option func(*options)

// WithEnv 指定环境变量快照，默认在 [New] 时读取进程环境。
func WithEnv(env subst.Env) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithOutput 指定处理报告的输出目标，默认 os.Stdout。
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLogger 指定调试日志，默认 slog.Default()。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEnvPrefix 设置诊断输出中回显的环境变量前缀。
//
// 空字符串表示不回显任何变量。前缀不影响替换，任意变量名都可被替换。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithDryRun 只统计替换次数，不写回文件。
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithAtomicWrite 启用原子写入：先写同目录临时文件，再重命名覆盖原文件。
func WithAtomicWrite(atomic bool) Option {
	return func(o *options) {
		o.atomic = atomic
	}
}

// WithColor 强制开启或关闭报告着色。
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = &enabled
	}
}
