package subst

import (
	"os"
	"sort"
	"strings"
)

// Env 是环境变量快照，变量名到值的映射。
//
// 快照在一次运行中视为只读。
type Env map[string]string

// Environ 生成当前进程环境变量快照。
func Environ() Env {
	return FromPairs(os.Environ())
}

// FromPairs 由 KEY=VALUE 形式的列表构建快照。
//
// 不含 "=" 或变量名为空的条目会被忽略，重复的变量名以后者为准。
func FromPairs(pairs []string) Env {
	env := make(Env, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = value
	}

	return env
}

// Lookup 按精确名称查找变量。
func (e Env) Lookup(name string) (string, bool) {
	val, ok := e[name]

	return val, ok
}

// WithPrefix 返回带指定前缀的变量名，按字典序排列。
func (e Env) WithPrefix(prefix string) []string {
	var names []string
	for name := range e {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names
}
