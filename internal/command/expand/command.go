// Package expand 提供单个模板的展开命令，结果写到标准输出。
package expand

import (
	"bufio"
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vargen/pkg/batch"
	"github.com/lwmacct/251207-go-pkg-vargen/pkg/vargen"
)

// Command 展开命令
var Command = New()

// New 创建新的展开命令实例，flag 状态不与其他实例共享。
func New() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开模板并逐行输出变体；未提供模板时从标准输入逐行读取",
		ArgsUsage: "[template ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "仅输出每个模板的变体数量",
			},
		},
		Action: action,
	}
}

func action(_ context.Context, cmd *cli.Command) error {
	templates := cmd.Args().Slice()
	if len(templates) == 0 {
		var err error
		if templates, err = batch.ReadTemplates(cmd.Root().Reader); err != nil {
			return err
		}
	}

	out := bufio.NewWriter(cmd.Root().Writer)
	for _, tmpl := range templates {
		if cmd.Bool("count") {
			fmt.Fprintln(out, vargen.Count(tmpl))

			continue
		}
		for _, v := range vargen.Expand(tmpl) {
			fmt.Fprintln(out, v)
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
