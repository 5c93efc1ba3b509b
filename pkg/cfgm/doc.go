// Package cfgm 提供通用的分层配置加载。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "myapp",
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
//
// # 配置文件路径
//
// [WithAppName] 会生成默认搜索路径（见 [DefaultPaths]），命中首个文件即停止。
// 通过 [WithRequiredFile] 指定的文件必须存在。
//
// # 环境变量(前缀)
//
// 前缀 + 大写的配置 key，点号 (.) 和连字符 (-) 转为下划线 (_)：
//   - MYAPP_DRY_RUN → dry-run
//   - MYAPP_LOG_LEVEL → log.level
//   - MYAPP_PATTERNS=a,b → patterns（逗号分隔的切片）
//
// # 占位符替换
//
// 配置文件在解析前会经过 [subst.Substitute]，${VAR} 与 $VAR 替换为环境变量值。
// 使用 [WithoutTemplateExpansion] 可禁用该行为。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - log.level → --log-level
//   - dry-run → --dry-run
package cfgm
