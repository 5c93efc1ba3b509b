// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .envsubst.yaml / ~/.envsubst.yaml / /etc/envsubst/config.yaml 或 --config
//  3. 环境变量 - ENVSUBST_ 前缀
//  4. CLI flags - 仅显式设置的 flag 生效
//
// 位置参数优先于 patterns 配置。
package config

import (
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/batch"
	"github.com/lwmacct/261019-go-pkg-envsubst/internal/logger"
)

// EnvPrefix 配置项对应环境变量的前缀。
const EnvPrefix = "ENVSUBST_"

// Config 应用配置。
type Config struct {
	Patterns  []string  `json:"patterns" desc:"待处理文件的 glob 模式，支持 **"`
	EnvPrefix string    `json:"env-prefix" desc:"诊断输出中回显的环境变量前缀"`
	DryRun    bool      `json:"dry-run" desc:"只统计替换次数，不写回文件"`
	Atomic    bool      `json:"atomic" desc:"写入临时文件后重命名覆盖原文件"`
	Log       LogConfig `json:"log" desc:"日志配置"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 debug/info/warn/error"`
	Format string `json:"format" desc:"日志格式 console/text/json/dev/none"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Patterns:  []string{batch.DefaultPattern},
		EnvPrefix: batch.DefaultEnvPrefix,
		Log: LogConfig{
			Level:  "info",
			Format: logger.FormatConsole,
		},
	}
}

// ResolvePatterns 返回本次运行使用的 glob 模式。
//
// 位置参数非空时覆盖配置；两者都为空时回退到默认模式。
func (c *Config) ResolvePatterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if len(c.Patterns) > 0 {
		return c.Patterns
	}

	return []string{batch.DefaultPattern}
}
