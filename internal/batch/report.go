// Package batch 按 glob 模式批量替换文件中的环境变量占位符并原地写回。
//
// 文件按发现顺序逐个串行处理，单个文件的读写失败只记录在其 [Result] 中，
// 不会中断整个批次。
package batch

// Stage 标记文件处理失败的阶段。
type Stage string

// 失败阶段。
const (
	StageRead  Stage = "read"
	StageWrite Stage = "write"
)

// Result 单个文件的处理结果。
type Result struct {
	Path    string
	Count   int      // 匹配到的占位符数量
	Missing []string // 引用了但未设置的变量
	Stage   Stage    // 失败阶段，成功时为空
	Err     error
}

// OK 报告文件是否处理成功。
func (r Result) OK() bool {
	return r.Err == nil
}

// Report 一次批处理的汇总。
type Report struct {
	Patterns []string
	Results  []Result
}

// Files 返回发现的文件总数。
func (r *Report) Files() int {
	return len(r.Results)
}

// Succeeded 返回处理成功的文件数。
func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}

	return n
}

// Failed 返回处理失败的文件数。
func (r *Report) Failed() int {
	return r.Files() - r.Succeeded()
}

// Replacements 返回成功处理的文件的替换总数。
func (r *Report) Replacements() int {
	total := 0
	for _, res := range r.Results {
		if res.OK() {
			total += res.Count
		}
	}

	return total
}
