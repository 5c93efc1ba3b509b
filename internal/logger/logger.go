// Package logger 基于 log/slog 构建应用日志处理器。
//
// 日志统一写入 stderr，stdout 留给处理报告。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
)

// 支持的日志格式。
const (
	FormatConsole = "console" // console-slog 彩色输出（默认）
	FormatText    = "text"
	FormatJSON    = "json"
	FormatDev     = "dev" // devslog 多行调试输出
	FormatNone    = "none"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Options 日志配置。
type Options struct {
	Level   string
	Format  string
	NoColor bool
}

// ParseLevel 将字符串解析为日志级别，大小写不敏感。
func ParseLevel(s string) (slog.Level, error) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("invalid log level: %q", s)
	}

	return level, nil
}

// New 按配置创建 logger，w 为日志输出目标。
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		handler = console.NewHandler(w, &console.HandlerOptions{
			Level:   level,
			NoColor: opts.NoColor,
		})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatDev:
		handler = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions:  &slog.HandlerOptions{Level: level, AddSource: true},
			NewLineAfterLog: true,
			NoColor:         opts.NoColor,
		})
	case FormatNone:
		handler = slog.NewTextHandler(io.Discard, nil)
	default:
		return nil, fmt.Errorf("unsupported log format: %q", opts.Format)
	}

	return slog.New(handler), nil
}
