// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .vargen.yaml / ~/.vargen.yaml / /etc/vargen/config.yaml 等
//  3. 环境变量 - VARGEN_ 前缀
//  4. CLI flags
package config

// Config 应用配置。
type Config struct {
	Generate GenerateConfig `json:"generate" desc:"批量展开配置"`
	Log      LogConfig      `json:"log" desc:"日志配置"`
	Profile  ProfileConfig  `json:"profile" desc:"性能分析配置"`
}

// GenerateConfig 批量展开配置。
//
//nolint:tagliatelle
type GenerateConfig struct {
	Input         string `json:"input" desc:"模板文件，每行一个模板"`
	Output        string `json:"output" desc:"结果文件"`
	Separator     string `json:"separator" desc:"批间分隔行，空表示不写"`
	Append        bool   `json:"append" desc:"追加写入结果文件"`
	BatchSize     int    `json:"batch-size" desc:"每批写出的变体数量"`
	Workers       int    `json:"workers" desc:"并发 worker 数量，0 表示 CPU 数"`
	Ordered       bool   `json:"ordered" desc:"按源行顺序写出结果"`
	MaxVariations uint64 `json:"max-variations" desc:"单个模板的最大变体数，0 表示不限制"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"日志级别 (debug|info|warn|error)"`
}

// ProfileConfig 性能分析配置。
type ProfileConfig struct {
	Mode string `json:"mode" desc:"分析模式 (cpu|mem|allocs|block|mutex|goroutine|trace)，空表示关闭"`
	Path string `json:"path" desc:"分析结果输出目录"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Generate: GenerateConfig{
			Input:     "vargen_source_text.txt",
			Output:    "vargen_result_text.txt",
			BatchSize: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
