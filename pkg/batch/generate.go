package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lwmacct/251207-go-pkg-vargen/pkg/vargen"
)

// maxLineSize 单行模板的最大字节数。
const maxLineSize = 16 << 20

// Stats 批量展开统计。
type Stats struct {
	Templates  int // 已展开的模板数
	Variations int // 已写出的变体数
	Batches    int // 已写出的批数
}

// FileConfig 文件到文件的批量展开配置。
type FileConfig struct {
	Input     string // 模板文件，每行一个模板
	Output    string // 结果文件
	Separator string // 批间分隔行，空表示不写
	Append    bool   // 追加写入；否则覆盖
	BatchSize int    // 批大小
}

// result 单个模板的展开结果。
type result struct {
	line       int
	variations []string
}

// ═══════════════════════════════════════════════════════════════════════════
// 输入
// ═══════════════════════════════════════════════════════════════════════════

// ReadTemplates 读取 r 中全部非空行作为模板，去掉行尾的 "\r"。
//
// 仅跳过空行；只含空白的行照常作为模板，展开为一个空变体。
func ReadTemplates(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var templates []string
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" {
			continue
		}
		templates = append(templates, line)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	return templates, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 批量展开
// ═══════════════════════════════════════════════════════════════════════════

// Generate 读取 r 中的模板，并发展开后写入 w。
//
// 每个模板由独立的 worker 展开，worker 之间不共享状态。
// 全部结果写完后调用 [Writer.Flush] 写出剩余批。
// ctx 取消时停止分发并返回 ctx.Err()；已写入 w 的内容不会回滚。
func Generate(ctx context.Context, r io.Reader, w *Writer, opts ...Option) (Stats, error) {
	o := newOptions(opts...)

	templates, err := ReadTemplates(r)
	if err != nil {
		return Stats{}, err
	}

	return generate(ctx, templates, w, o)
}

// generate 并发展开 templates 并写入 w。
func generate(ctx context.Context, templates []string, w *Writer, o options) (Stats, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(o.workers)

	results := make(chan result, o.workers)

	var waitErr error
	go func() {
		defer close(results)

		for i, tmpl := range templates {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				return expandLine(gctx, i, tmpl, o.maxVariations, results)
			})
		}

		waitErr = g.Wait()
	}()

	var (
		stats    Stats
		writeErr error
	)
	sink := newSink(w, o.ordered)
	for res := range results {
		if writeErr != nil {
			continue
		}
		if err := sink.put(res); err != nil {
			writeErr = err
			cancel()

			continue
		}
		stats.Templates++
	}

	switch {
	case writeErr != nil:
		return stats, writeErr
	case waitErr != nil:
		return stats, waitErr
	case ctx.Err() != nil:
		return stats, ctx.Err()
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	stats.Variations = w.Records()
	stats.Batches = w.Batches()

	return stats, nil
}

// expandLine 展开单个模板并把结果送入 results。
func expandLine(ctx context.Context, line int, tmpl string, limit uint64, results chan<- result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if limit > 0 {
		if n := vargen.Count(tmpl); n > limit {
			slog.Debug("Template rejected", "line", line+1, "variations", n, "limit", limit)

			return fmt.Errorf("%w: template %d expands to %d variations (limit %d)", ErrTooManyVariations, line+1, n, limit)
		}
	}

	select {
	case results <- result{line: line, variations: vargen.Expand(tmpl)}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sink 按完成顺序或源行顺序把结果交给 Writer。
type sink struct {
	w       *Writer
	ordered bool
	next    int
	waiting map[int][]string
}

func newSink(w *Writer, ordered bool) *sink {
	return &sink{w: w, ordered: ordered, waiting: make(map[int][]string)}
}

func (s *sink) put(res result) error {
	if !s.ordered {
		return s.w.Add(res.variations...)
	}

	s.waiting[res.line] = res.variations
	for {
		variations, ok := s.waiting[s.next]
		if !ok {
			return nil
		}
		delete(s.waiting, s.next)
		s.next++

		if err := s.w.Add(variations...); err != nil {
			return err
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 文件入口
// ═══════════════════════════════════════════════════════════════════════════

// GenerateFile 从 cfg.Input 读取模板，展开后写入 cfg.Output。
//
// 输入在打开输出文件之前完整读取，读取失败时输出文件保持不变。
// cfg.Append 为 true 时追加写入，否则覆盖。
// 输出文件在所有返回路径上都会刷新并关闭。
func GenerateFile(ctx context.Context, cfg FileConfig, opts ...Option) (stats Stats, err error) {
	if cfg.BatchSize <= 0 {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidBatchSize, cfg.BatchSize)
	}

	templates, err := readTemplateFile(cfg.Input)
	if err != nil {
		return Stats{}, err
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if cfg.Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	out, err := os.OpenFile(cfg.Output, flags, 0o644) //nolint:gosec // path is from trusted config
	if err != nil {
		return Stats{}, fmt.Errorf("open output %s: %w", cfg.Output, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close output %s: %w", cfg.Output, closeErr))
		}
	}()

	w, err := NewWriter(out, cfg.BatchSize, cfg.Separator)
	if err != nil {
		return Stats{}, err
	}
	// Generate 出错时仍写出已累计的结果
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			err = errors.Join(err, fmt.Errorf("flush output %s: %w", cfg.Output, flushErr))
		}
	}()

	return generate(ctx, templates, w, newOptions(opts...))
}

// readTemplateFile 读取模板文件的全部模板。
func readTemplateFile(path string) ([]string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer func() { _ = in.Close() }()

	templates, err := ReadTemplates(in)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}

	return templates, nil
}
