package subst

import (
	"regexp"
	"strings"
)

// placeholderPattern 匹配 ${NAME} 或 $NAME。
//
// RE2 的交替按从左到右优先，与花括号形式优先的规则一致。
var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z0-9_]+)`)

// ═══════════════════════════════════════════════════════════════════════════
// 占位符解析
// ═══════════════════════════════════════════════════════════════════════════

// nameAt 从子匹配下标中取出变量名。
func nameAt(text string, loc []int) string {
	if loc[2] >= 0 {
		return text[loc[2]:loc[3]]
	}

	return text[loc[4]:loc[5]]
}

// Names 返回文本中引用的变量名，去重并保持首次出现顺序。
func Names(text string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		name := nameAt(text, loc)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// Missing 返回文本中引用但在 env 中不存在的变量名。
func Missing(text string, env Env) []string {
	var missing []string
	for _, name := range Names(text) {
		if _, ok := env.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

// ═══════════════════════════════════════════════════════════════════════════
// 替换
// ═══════════════════════════════════════════════════════════════════════════

// Substitute 将 text 中的占位符替换为 env 中对应的值。
//
// 返回替换后的文本与匹配到的占位符数量。未设置的变量替换为空字符串，
// 同样计数。非占位符部分（含换行与空白）逐字节保留。
func Substitute(text string, env Env) (string, int) {
	locs := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}

	var buf strings.Builder
	buf.Grow(len(text))

	last := 0
	for _, loc := range locs {
		buf.WriteString(text[last:loc[0]])
		val, _ := env.Lookup(nameAt(text, loc))
		buf.WriteString(val)
		last = loc[1]
	}
	buf.WriteString(text[last:])

	return buf.String(), len(locs)
}
