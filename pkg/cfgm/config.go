package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
//  5. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	paths = append(paths, "config.yaml", "config/config.yaml")

	return paths
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// 配置文件按顺序查找，命中首个文件即停止。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.configPaths) == 0 {
		options.configPaths = DefaultPaths(options.appName)
	}

	configMap := structToMap(defaultConfig)

	// 配置文件 (按顺序搜索，找到第一个即停止)
	fileMap, path, err := readFirstConfig(options.resolvePaths())
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)
	} else {
		slog.Debug("No config file found, using defaults")
	}

	// 环境变量绑定基于配置结构体的 key 自动生成
	if options.envPrefix != "" {
		for envKey, configPath := range generateEnvBindings(options.envPrefix, collectConfigKeys(defaultConfig)) {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// CLI flags 仅在用户明确指定时覆盖
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
//
// 示例：
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "vargen",
//	    cfgm.WithEnvPrefix("VARGEN_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// resolvePaths 将相对路径拼接到 baseDir。
func (o *options) resolvePaths() []string {
	if o.baseDir == "" {
		return o.configPaths
	}

	paths := make([]string, len(o.configPaths))
	for i, p := range o.configPaths {
		if filepath.IsAbs(p) {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(o.baseDir, p)
		}
	}

	return paths
}

// readFirstConfig 读取并解析第一个存在的配置文件。
//
// 没有文件可读时返回 nil map；文件存在但解析失败时返回错误。
func readFirstConfig(paths []string) (map[string]any, string, error) {
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, path, fmt.Errorf("parse config file %s: %w", path, err)
		}

		return fileMap, path, nil
	}

	return nil, "", nil
}

// collectConfigKeys 递归收集配置结构体的叶子 key（如 generate.batch-size）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	walkConfigFields(reflect.TypeOf(defaultConfig), "", func(key string, _ reflect.Type) {
		keys = append(keys, key)
	})

	return keys
}

// walkConfigFields 遍历结构体叶子字段，fn 接收完整 key 与字段类型。
func walkConfigFields(typ reflect.Type, prefix string, fn func(key string, typ reflect.Type)) {
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
		if prefix != "" {
			key = prefix + "." + key
		}

		if isStructType(field.Type) {
			walkConfigFields(field.Type, key, fn)

			continue
		}

		fn(key, field.Type)
	}
}

// generateEnvBindings 根据配置 key 生成 环境变量 → 配置 key 映射。
//
// 示例 (前缀 "VARGEN_")：
//   - generate.batch-size → VARGEN_GENERATE_BATCH_SIZE
//   - log.level → VARGEN_LOG_LEVEL
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
// flag 名称由 json key 中的 "." 替换为 "-" 得到：
//   - generate.batch-size → --generate-batch-size
//   - log.level → --log-level
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkConfigFields(typ, prefix, func(key string, fieldType reflect.Type) {
		name := strings.ReplaceAll(key, ".", "-")
		if !cmd.IsSet(name) {
			return
		}
		if val, ok := flagValue(cmd, name, fieldType); ok {
			setByPath(config, key, val)
		}
	})
}

// flagValue 按字段类型读取 CLI flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, name string, fieldType reflect.Type) (any, bool) {
	if fieldType == reflect.TypeFor[time.Duration]() {
		return cmd.Duration(name), true
	}

	switch fieldType.Kind() {
	case reflect.String:
		return cmd.String(name), true
	case reflect.Bool:
		return cmd.Bool(name), true
	case reflect.Int:
		return cmd.Int(name), true
	case reflect.Int64:
		return cmd.Int64(name), true
	case reflect.Uint:
		return cmd.Uint(name), true
	case reflect.Uint64:
		return cmd.Uint64(name), true
	case reflect.Float64:
		return cmd.Float64(name), true
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return cmd.StringSlice(name), true
		}
	}

	return nil, false
}
