package cfgm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

var durationType = reflect.TypeFor[time.Duration]()

// MarshalYAML 将配置结构体按 json tag 输出为 YAML。
func MarshalYAML(cfg any) ([]byte, error) {
	return yamlv3.Marshal(structToMap(cfg))
}

func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType
}

// structToMap 将配置结构体展开为以 json tag 为 key 的嵌套 map。
//
// 配置只包含标量、[]string 与嵌套结构体，其余类型按原值保留。
func structToMap(cfg any) map[string]any {
	return structValueToMap(reflect.Indirect(reflect.ValueOf(cfg)))
}

func structValueToMap(val reflect.Value) map[string]any {
	out := make(map[string]any)
	if val.Kind() != reflect.Struct {
		return out
	}

	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if !field.IsExported() || key == "" {
			continue
		}

		fieldVal := val.Field(i)
		switch {
		case isStructType(field.Type):
			out[key] = structValueToMap(reflect.Indirect(fieldVal))
		case field.Type == durationType:
			out[key] = time.Duration(fieldVal.Int()).String()
		case fieldVal.Kind() == reflect.Slice:
			if fieldVal.IsNil() {
				continue
			}
			items := make([]any, fieldVal.Len())
			for j := range items {
				items[j] = fieldVal.Index(j).Interface()
			}
			out[key] = items
		default:
			out[key] = fieldVal.Interface()
		}
	}

	return out
}

func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeMapKeys(raw)
	if normalized == nil {
		return map[string]any{}, nil
	}
	configMap, ok := normalized.(map[string]any)
	if !ok {
		return nil, errors.New("config root must be object")
	}

	return configMap, nil
}

// normalizeMapKeys 将 YAML 解出的非字符串 key 统一转为字符串，原地处理嵌套结构。
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalizeMapKeys(value)
		}

		return out
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case []any:
		for i, item := range typed {
			typed[i] = normalizeMapKeys(item)
		}

		return typed
	default:
		return val
	}
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if valueMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, valueMap)

				continue
			}
		}

		dst[key] = value
	}
}

// setByPath 按 "a.b.c" 路径写入值，缺失的中间层自动创建。
func setByPath(dst map[string]any, path string, value any) {
	parents, leaf := "", path
	if i := strings.LastIndex(path, "."); i >= 0 {
		parents, leaf = path[:i], path[i+1:]
	}

	current := dst
	if parents != "" {
		for _, part := range strings.Split(parents, ".") {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
	}
	current[leaf] = value
}

func decodeConfigMap(data map[string]any, out any) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}

// flattenMapKeys 返回嵌套 map 的叶子路径，按字典序排列。
func flattenMapKeys(data map[string]any) []string {
	var keys []string
	flattenMapKeysRecursive(data, "", &keys)
	sort.Strings(keys)

	return keys
}

func flattenMapKeysRecursive(data map[string]any, prefix string, keys *[]string) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if child, ok := value.(map[string]any); ok && len(child) > 0 {
			flattenMapKeysRecursive(child, fullKey, keys)

			continue
		}

		*keys = append(*keys, fullKey)
	}
}
