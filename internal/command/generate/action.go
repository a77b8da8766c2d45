package generate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/command"
	"github.com/lwmacct/251207-go-pkg-vargen/internal/config"
	"github.com/lwmacct/251207-go-pkg-vargen/pkg/batch"
	"github.com/lwmacct/251207-go-pkg-vargen/pkg/cfgm"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags → 旧版 key=value 参数
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), command.AppName,
		cfgm.WithEnvPrefix(command.EnvPrefix),
	)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyLegacyArgs(&cfg.Generate, cmd.Args().Slice()); err != nil {
		return err
	}

	if err := command.SetupLogger(cmd.Root().ErrWriter, cfg.Log.Level); err != nil {
		return err
	}

	profiler, err := command.StartProfile(cfg.Profile)
	if err != nil {
		return err
	}
	defer profiler.Stop()

	// 中断信号取消未完成的展开，已展开的结果仍会写出
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen := cfg.Generate
	start := time.Now()
	slog.Debug("Generating variations", "input", gen.Input, "output", gen.Output,
		"append", gen.Append, "batchSize", gen.BatchSize, "workers", gen.Workers, "ordered", gen.Ordered)

	stats, err := batch.GenerateFile(ctx, batch.FileConfig{
		Input:     gen.Input,
		Output:    gen.Output,
		Separator: gen.Separator,
		Append:    gen.Append,
		BatchSize: gen.BatchSize,
	},
		batch.WithWorkers(gen.Workers),
		batch.WithOrdered(gen.Ordered),
		batch.WithMaxVariations(gen.MaxVariations),
	)
	if err != nil {
		slog.Error("Generation failed", "input", gen.Input, "error", err)

		return fmt.Errorf("generate variations: %w", err)
	}

	slog.Info("Variations generated",
		"input", gen.Input,
		"output", gen.Output,
		"templates", stats.Templates,
		"variations", stats.Variations,
		"batches", stats.Batches,
		"elapsed", time.Since(start),
	)

	return nil
}
