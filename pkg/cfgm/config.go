package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 提供 appName 时只返回应用专属路径，避免误读工作目录中无关的 config.yaml。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//
// 未提供 appName 时返回 config.yaml 与 config/config.yaml。
func DefaultPaths(appName ...string) []string {
	if len(appName) == 0 || appName[0] == "" {
		return []string{"config.yaml", filepath.Join("config", "config.yaml")}
	}

	name := appName[0]
	paths := []string{"." + name + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+name+".yaml"))
	}

	return append(paths, "/etc/"+name+"/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName] / [WithRequiredFile]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	env := options.env
	if env == nil {
		env = subst.Environ()
	}

	configMap := structToMap(defaultConfig)

	// 2️⃣ 加载配置文件
	fileMap, path, err := readConfigFile(options, env)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		warnUnknownKeys(path, fileMap, collectConfigKeys(defaultConfig))
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !options.noTemplateExpansion)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	// 3️⃣ 自动生成环境变量绑定 (基于配置结构体的 key)
	if options.envPrefix != "" {
		bindings := generateEnvBindings(options.envPrefix, collectConfigKeys(defaultConfig))
		for envKey, configPath := range bindings {
			if val, ok := env.Lookup(envKey); ok && val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ 加载 CLI flags (最高优先级，仅当用户明确指定时)
	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// readConfigFile 查找并解析配置文件，未找到时返回 nil map。
func readConfigFile(options *options, env subst.Env) (map[string]any, string, error) {
	paths := options.configPaths
	switch {
	case options.requiredFile != "":
		paths = []string{options.requiredFile}
	case len(paths) == 0:
		paths = DefaultPaths(options.appName)
	}

	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			if options.requiredFile != "" {
				return nil, path, fmt.Errorf("read config file %s: %w", path, err)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Debug("Skip unreadable config file", "path", path, "error", err)
			}

			continue // 文件不存在或无法读取，尝试下一个路径
		}

		if !options.noTemplateExpansion {
			expanded, _ := subst.Substitute(string(content), env)
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, path, fmt.Errorf("parse config file %s: %w", path, err)
		}

		return fileMap, path, nil
	}

	return nil, "", nil
}

// warnUnknownKeys 提示配置文件中未定义的 key，通常是拼写错误。
func warnUnknownKeys(path string, fileMap map[string]any, known []string) {
	valid := make(map[string]struct{}, len(known))
	for _, key := range known {
		valid[key] = struct{}{}
	}
	for _, key := range flattenMapKeys(fileMap) {
		if _, ok := valid[key]; !ok {
			slog.Warn("Unknown config key", "path", path, "key", key)
		}
	}
}

// collectConfigKeys 递归收集配置结构体的 key 列表。
//
// 以 json tag 为准，返回叶子路径（如 log.level）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	collectConfigKeysRecursive(reflect.TypeOf(defaultConfig), "", &keys)

	return keys
}

func collectConfigKeysRecursive(typ reflect.Type, prefix string, keys *[]string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			collectConfigKeysRecursive(field.Type, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 示例 (前缀 "ENVSUBST_")：
//   - log.level → ENVSUBST_LOG_LEVEL
//   - dry-run → ENVSUBST_DRY_RUN
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 json tag 路径把 "." 替换为 "-" 得到。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			applyCLIFlags(cmd, config, field.Type, fullKey)

			continue
		}

		cliFlag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(cliFlag) {
			continue
		}

		setCLIFlagValue(cmd, config, fullKey, cliFlag, field.Type)
	}
}

// setCLIFlagValue 按字段类型读取 CLI 值并写入配置 map。
func setCLIFlagValue(cmd *cli.Command, config map[string]any, configPath, cliFlag string, fieldType reflect.Type) {
	if fieldType == durationType {
		setByPath(config, configPath, cmd.Duration(cliFlag))

		return
	}

	switch fieldType.Kind() {
	case reflect.String:
		setByPath(config, configPath, cmd.String(cliFlag))
	case reflect.Bool:
		setByPath(config, configPath, cmd.Bool(cliFlag))
	case reflect.Int:
		setByPath(config, configPath, cmd.Int(cliFlag))
	case reflect.Int64:
		setByPath(config, configPath, cmd.Int64(cliFlag))
	case reflect.Float64:
		setByPath(config, configPath, cmd.Float64(cliFlag))
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			setByPath(config, configPath, cmd.StringSlice(cliFlag))
		}
	default:
		// 不支持的类型，忽略
	}
}
