// Package generate 提供文件到文件的批量展开命令。
package generate

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/command"
)

// Command 批量展开命令
var Command = New()

// stopAfterFirstArg 首个位置参数之后不再解析 flag，
// 旧版位置参数中的分隔行（如 "-----"）不会被当作 flag。
var stopAfterFirstArg = 1

// New 创建新的批量展开命令实例，flag 状态不与其他实例共享。
func New() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "读取模板文件，展开全部变体并分批写入结果文件",
		ArgsUsage: "[key=value ...] | [analyze_speed [append [separator [input_filename [output_filename]]]]]",
		Description: "兼容旧版参数形式：append=true separator=----- " +
			"input_filename=in.txt output_filename=out.txt，" +
			"或位置参数 true true ----- in.txt out.txt。flag 必须位于位置参数之前。",
		StopOnNthArg: &stopAfterFirstArg,
		Action:       action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "generate-input",
				Aliases: []string{"i"},
				Value:   command.Defaults.Generate.Input,
				Usage:   "模板文件，每行一个模板",
			},
			&cli.StringFlag{
				Name:    "generate-output",
				Aliases: []string{"o"},
				Value:   command.Defaults.Generate.Output,
				Usage:   "结果文件",
			},
			&cli.StringFlag{
				Name:    "generate-separator",
				Aliases: []string{"s"},
				Value:   command.Defaults.Generate.Separator,
				Usage:   "批间分隔行，空表示不写",
			},
			&cli.BoolFlag{
				Name:    "generate-append",
				Aliases: []string{"a"},
				Value:   command.Defaults.Generate.Append,
				Usage:   "追加写入结果文件",
			},
			&cli.IntFlag{
				Name:    "generate-batch-size",
				Aliases: []string{"b"},
				Value:   command.Defaults.Generate.BatchSize,
				Usage:   "每批写出的变体数量",
			},
			&cli.IntFlag{
				Name:    "generate-workers",
				Aliases: []string{"w"},
				Value:   command.Defaults.Generate.Workers,
				Usage:   "并发 worker 数量，0 表示 CPU 数",
			},
			&cli.BoolFlag{
				Name:  "generate-ordered",
				Value: command.Defaults.Generate.Ordered,
				Usage: "按源行顺序写出结果",
			},
			&cli.Uint64Flag{
				Name:  "generate-max-variations",
				Value: command.Defaults.Generate.MaxVariations,
				Usage: "单个模板的最大变体数，0 表示不限制",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: command.Defaults.Log.Level,
				Usage: "日志级别 (debug|info|warn|error)",
			},
			&cli.StringFlag{
				Name:  "profile-mode",
				Value: command.Defaults.Profile.Mode,
				Usage: fmt.Sprintf("性能分析模式 (%s)，空表示关闭", strings.Join(command.ProfileModes(), "|")),
			},
			&cli.StringFlag{
				Name:  "profile-path",
				Value: command.Defaults.Profile.Path,
				Usage: "性能分析结果输出目录",
			},
		},
	}
}
