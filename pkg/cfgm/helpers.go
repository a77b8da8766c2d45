package cfgm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// configTagName 返回字段的配置 key，即 json tag 的名称部分。
func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// isStructType 判断字段是否为需要展开的嵌套配置结构体。
func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct &&
		typ != reflect.TypeFor[time.Duration]() &&
		typ != reflect.TypeFor[time.Time]()
}

// structToMap 将默认配置转为以 json key 索引的嵌套 map。
func structToMap(cfg any) map[string]any {
	data, err := json.Marshal(cfg)
	if err != nil {
		return map[string]any{}
	}

	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{}
	}

	return out
}

// parseConfigBytes 按扩展名解析配置内容：.json 使用 JSON，其余使用 YAML。
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

	switch root := normalizeMapKeys(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return root, nil
	default:
		return nil, errors.New("config root must be object")
	}
}

// normalizeMapKeys 递归将 YAML 的 map[any]any 转为 map[string]any。
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}

// mergeMaps 将 src 深度合并到 dst，src 优先。
func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		srcMap, srcOK := value.(map[string]any)
		dstMap, dstOK := dst[key].(map[string]any)
		if srcOK && dstOK {
			mergeMaps(dstMap, srcMap)

			continue
		}

		dst[key] = value
	}
}

// setByPath 按 "a.b.c" 形式的路径写入值，缺失的中间层自动创建。
func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}

// decodeConfigMap 使用 mapstructure 将合并后的 map 解码到配置结构体。
//
// 开启弱类型输入，环境变量中的字符串可解码为数值与布尔值。
func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
