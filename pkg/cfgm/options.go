package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

// options 配置加载选项。
type options struct {
	appName             string // 应用名称，用于生成默认配置路径
	cmd                 *cli.Command
	configPaths         []string
	requiredFile        string
	envPrefix           string
	env                 subst.Env // 环境变量来源，nil 时读取进程环境
	noTemplateExpansion bool      // 是否禁用配置文件占位符替换（默认启用）
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；找不到任何文件时使用默认值。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithRequiredFile 指定唯一的配置文件，文件不存在或不可读时 [Load] 返回 error。
//
// 设置后忽略 [WithConfigPaths] 与 [WithAppName] 生成的搜索路径。
func WithRequiredFile(path string) Option {
	return func(o *options) {
		o.requiredFile = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 注意：通过反射自动生成配置 key 的绑定，只匹配结构体中定义的 key。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithEnv 指定环境变量快照，同时用于前缀绑定与占位符替换。
func WithEnv(env subst.Env) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithoutTemplateExpansion 禁用配置文件的占位符替换，保留原始 ${...} 字符串。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.noTemplateExpansion = true
	}
}
