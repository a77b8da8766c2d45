package batch

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

// Writer 累计变体并按批写出。
//
// 累计数量达到批大小时整批写出；一次 [Writer.Add] 的变体不会被拆开，
// 因此单批可能超过批大小。Writer 不是并发安全的。
type Writer struct {
	out       *bufio.Writer
	separator string
	batchSize int
	pending   []string
	records   int
	batches   int
}

// NewWriter 创建写入 w 的 Writer。
//
// separator 为空时批后不写分隔行。batchSize 必须为正数。
func NewWriter(w io.Writer, batchSize int, separator string) (*Writer, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	return &Writer{
		out:       bufio.NewWriter(w),
		separator: separator,
		batchSize: batchSize,
		pending:   make([]string, 0, batchSize),
	}, nil
}

// Add 累计变体，达到批大小时写出当前批。
func (w *Writer) Add(variations ...string) error {
	w.pending = append(w.pending, variations...)
	if len(w.pending) < w.batchSize {
		return nil
	}

	return w.writeBatch()
}

// Flush 写出未满的剩余批并刷新底层缓冲。
//
// 没有剩余变体时不写分隔行。重复调用是安全的。
func (w *Writer) Flush() error {
	if len(w.pending) > 0 {
		if err := w.writeBatch(); err != nil {
			return err
		}
	}

	return w.out.Flush()
}

// Records 返回已写出的变体数量（不含分隔行）。
func (w *Writer) Records() int { return w.records }

// Batches 返回已写出的批数。
func (w *Writer) Batches() int { return w.batches }

func (w *Writer) writeBatch() error {
	for _, v := range w.pending {
		if _, err := w.out.WriteString(v + "\n"); err != nil {
			return fmt.Errorf("write variation: %w", err)
		}
	}
	if w.separator != "" {
		if _, err := w.out.WriteString(w.separator + "\n"); err != nil {
			return fmt.Errorf("write separator: %w", err)
		}
	}

	w.records += len(w.pending)
	w.batches++
	slog.Debug("Batch written", "batch", w.batches, "size", len(w.pending))

	w.pending = w.pending[:0]

	return nil
}
