package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/command"
	"github.com/lwmacct/251207-go-pkg-vargen/internal/command/expand"
	"github.com/lwmacct/251207-go-pkg-vargen/internal/command/generate"
)

func main() {
	app := &cli.Command{
		Name:    command.AppName,
		Usage:   "方括号备选模板展开工具",
		Version: command.Version,
		Commands: []*cli.Command{
			generate.Command,
			expand.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
