// Package subst 提供 envsubst 风格的占位符替换。
//
// 识别两种占位符：
//   - ${NAME} - NAME 为除 "}" 以外的任意字符
//   - $NAME - NAME 由字母、数字、下划线组成
//
// 同一位置优先尝试花括号形式。替换为单遍扫描，替换结果不会再次展开。
// 未设置的变量替换为空字符串，但仍计入替换次数。
//
// # 语义说明
//
//  1. 不支持默认值 (${VAR:-x})、嵌套展开与 "$$" 转义
//  2. 无法构成占位符的 "$" 原样保留
//  3. 环境变量通过 [Env] 显式传入，替换函数本身无副作用
//
// # 快速开始
//
//	env := subst.Environ()
//	out, n := subst.Substitute(`host: ${APP_HOST}`, env)
//
// 详见 [Substitute] 文档。
package subst
