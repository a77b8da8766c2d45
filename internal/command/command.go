// Package command 提供 vargen 各子命令共用的配置与运行时设置。
package command

import "github.com/lwmacct/251207-go-pkg-vargen/internal/config"

const (
	// AppName 应用名称，用于配置文件搜索路径。
	AppName = "vargen"
	// EnvPrefix 环境变量前缀。
	EnvPrefix = "VARGEN_"
)

// Version 构建版本，发布时通过 -ldflags "-X" 注入。
var Version = "dev"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()
