package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

// 默认值。
const (
	DefaultPattern   = "deploy/**/*.yaml"
	DefaultEnvPrefix = "APP_"
)

// Processor 批量文件处理器。
type Processor struct {
	env       subst.Env
	out       io.Writer
	log       *slog.Logger
	envPrefix string
	dryRun    bool
	atomic    bool

	errColor *color.Color
	bold     *color.Color

	writeFile func(path string, data []byte) error
}

// New 创建处理器。
//
// 未指定 [WithEnv] 时立即读取进程环境快照，之后的环境变化不影响本处理器。
func New(opts ...Option) *Processor {
	o := &options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(o)
	}

	if o.env == nil {
		o.env = subst.Environ()
	}
	if o.out == nil {
		o.out = os.Stdout
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	p := &Processor{
		env:       o.env,
		out:       o.out,
		log:       o.logger,
		envPrefix: o.envPrefix,
		dryRun:    o.dryRun,
		atomic:    o.atomic,
		errColor:  color.New(color.FgRed),
		bold:      color.New(color.Bold),
	}
	p.writeFile = p.write
	if o.color != nil {
		if *o.color {
			p.errColor.EnableColor()
			p.bold.EnableColor()
		} else {
			p.errColor.DisableColor()
			p.bold.DisableColor()
		}
	}

	return p
}

// ═══════════════════════════════════════════════════════════════════════════
// 文件发现
// ═══════════════════════════════════════════════════════════════════════════

// Expand 展开 glob 模式，返回去重后的文件列表。
//
// "**" 递归匹配任意层目录，只返回普通文件。多个模式的结果按首次出现顺序合并，
// 以路径字符串精确去重。模式非法时返回 error。
func (p *Processor) Expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var files []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		p.log.Debug("Expanded pattern", "pattern", pattern, "matches", len(matches))

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	return files, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 文件处理
// ═══════════════════════════════════════════════════════════════════════════

// ProcessFile 读取文件、替换占位符并写回同一路径。
//
// 失败不会返回 error，而是记录在 [Result] 中。
func (p *Processor) ProcessFile(path string) Result {
	res := Result{Path: path}

	content, err := os.ReadFile(path) //nolint:gosec // path comes from operator supplied globs
	if err != nil {
		res.Stage = StageRead
		res.Err = err

		return res
	}

	text := string(content)
	out, count := subst.Substitute(text, p.env)
	res.Count = count
	res.Missing = subst.Missing(text, p.env)
	if len(res.Missing) > 0 {
		p.log.Debug("Unset variables resolved to empty", "path", path, "names", res.Missing)
	}

	if p.dryRun {
		return res
	}

	if err := p.writeFile(path, []byte(out)); err != nil {
		res.Stage = StageWrite
		res.Err = err
	}

	return res
}

// ProcessPaths 按顺序处理文件并实时输出每个文件的状态。
func (p *Processor) ProcessPaths(paths []string) *Report {
	report := &Report{Results: make([]Result, 0, len(paths))}
	for _, path := range paths {
		p.printf("Processing: %s\n", path)

		res := p.ProcessFile(path)
		report.Results = append(report.Results, res)

		switch {
		case !res.OK():
			_, _ = p.errColor.Fprintf(p.out, "Error processing %s: %v\n", path, res.Err)
			p.log.Debug("Process file failed", "path", path, "stage", res.Stage, "error", res.Err)
		case p.dryRun:
			p.printf(" -> Dry run: %s (replacements: %d)\n", path, res.Count)
		default:
			p.printf(" -> Processed: %s (replacements: %d)\n", path, res.Count)
		}
	}

	return report
}

// Run 执行完整的批处理流程：诊断输出、文件发现、逐个处理、汇总。
//
// 未匹配到任何文件时输出提示并返回空报告，不视为错误。
// 仅模式展开失败时返回 error。
func (p *Processor) Run(patterns []string) (*Report, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	p.announce(patterns)

	files, err := p.Expand(patterns)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		p.printf("No files found to process\n")

		return &Report{Patterns: patterns}, nil
	}

	p.printf("Total unique files to process: %d\n", len(files))

	report := p.ProcessPaths(files)
	report.Patterns = patterns

	_, _ = p.bold.Fprintf(p.out, "Total files processed: %d (failed: %d)\n", report.Files(), report.Failed())
	_, _ = p.bold.Fprintf(p.out, "Total replacements across all files: %d\n", report.Replacements())

	return report, nil
}

// announce 输出将要使用的模式与带前缀的环境变量。
func (p *Processor) announce(patterns []string) {
	p.printf("Processing file patterns:\n")
	for _, pattern := range patterns {
		p.printf("  - %s\n", pattern)
	}

	if p.envPrefix == "" {
		return
	}
	p.printf("With the following environment variables (%s*):\n", p.envPrefix)
	for _, name := range p.env.WithPrefix(p.envPrefix) {
		p.printf("  %s=%s\n", name, p.env[name])
	}
}

func (p *Processor) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// ═══════════════════════════════════════════════════════════════════════════
// 写回
// ═══════════════════════════════════════════════════════════════════════════

func (p *Processor) write(path string, data []byte) error {
	if p.atomic {
		return writeAtomic(path, data)
	}

	return os.WriteFile(path, data, 0o600)
}

// writeAtomic 写入同目录临时文件后重命名覆盖目标，保留原文件权限。
//
// 目标为符号链接时替换链接指向的文件。
func writeAtomic(path string, data []byte) (err error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()

		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}
