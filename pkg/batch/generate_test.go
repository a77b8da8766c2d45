package batch_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vargen/pkg/batch"
)

const sourceText = "A[x|y|z]B\n\n[a|b]\r\n   \nplain\n"

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestGenerate_Ordered(t *testing.T) {
	var buf bytes.Buffer
	w, err := batch.NewWriter(&buf, 2, "--")
	require.NoError(t, err)

	stats, err := batch.Generate(context.Background(), strings.NewReader(sourceText), w,
		batch.WithWorkers(4),
		batch.WithOrdered(true),
	)
	require.NoError(t, err)

	assert.Equal(t, "AxB\nAyB\nAzB\n--\na\nb\n--\n\nplain\n--\n", buf.String())
	assert.Equal(t, batch.Stats{Templates: 4, Variations: 7, Batches: 3}, stats)
}

func TestGenerate_CompletionOrder(t *testing.T) {
	var buf bytes.Buffer
	w, err := batch.NewWriter(&buf, 100, "")
	require.NoError(t, err)

	stats, err := batch.Generate(context.Background(), strings.NewReader(sourceText), w, batch.WithWorkers(2))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"AxB", "AyB", "AzB", "a", "b", "", "plain"}, lines(buf.String()))
	assert.Equal(t, 7, stats.Variations)
	assert.Equal(t, 1, stats.Batches)

	// 单个模板内部的变体顺序不受并发影响
	out := buf.String()
	assert.Less(t, strings.Index(out, "AxB"), strings.Index(out, "AyB"))
	assert.Less(t, strings.Index(out, "AyB"), strings.Index(out, "AzB"))
}

func TestGenerate_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	w, err := batch.NewWriter(&buf, 10, "---")
	require.NoError(t, err)

	stats, err := batch.Generate(context.Background(), strings.NewReader("\n\n"), w)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
	assert.Equal(t, batch.Stats{}, stats)
}

func TestReadTemplates(t *testing.T) {
	templates, err := batch.ReadTemplates(strings.NewReader("a\n\n   \r\n[b|c]\r\n\t\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "   ", "[b|c]", "\t"}, templates)
}

func TestGenerate_WhitespaceLineYieldsEmptyRecord(t *testing.T) {
	var buf bytes.Buffer
	w, err := batch.NewWriter(&buf, 10, "")
	require.NoError(t, err)

	stats, err := batch.Generate(context.Background(), strings.NewReader("a\n   \nb\n"), w, batch.WithOrdered(true))
	require.NoError(t, err)

	assert.Equal(t, "a\n\nb\n", buf.String())
	assert.Equal(t, 3, stats.Variations)
}

func TestGenerate_MaxVariations(t *testing.T) {
	var buf bytes.Buffer
	w, err := batch.NewWriter(&buf, 10, "")
	require.NoError(t, err)

	_, err = batch.Generate(context.Background(), strings.NewReader("ok\n[a|b][c|d]\n"), w,
		batch.WithMaxVariations(3),
	)
	require.ErrorIs(t, err, batch.ErrTooManyVariations)
	assert.Contains(t, err.Error(), "template 2")
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := batch.NewWriter(&bytes.Buffer{}, 10, "")
	require.NoError(t, err)

	_, err = batch.Generate(ctx, strings.NewReader(sourceText), w)
	require.ErrorIs(t, err, context.Canceled)
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestGenerate_WriteError(t *testing.T) {
	w, err := batch.NewWriter(failingWriter{}, 1, "")
	require.NoError(t, err)

	// 超过 bufio 默认缓冲区，写入时立即失败
	long := strings.Repeat("x", 8192)
	input := strings.Repeat(long+"\n", 4)

	_, err = batch.Generate(context.Background(), strings.NewReader(input), w, batch.WithWorkers(2))
	require.ErrorIs(t, err, errDiskFull)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path) //nolint:gosec // test fixture
	require.NoError(t, err)

	return string(content)
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "source.txt")
	output := filepath.Join(dir, "result.txt")
	writeFile(t, input, "Hello [World|Universe]!\n")

	t.Run("overwrite", func(t *testing.T) {
		writeFile(t, output, "old\n")

		stats, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:     input,
			Output:    output,
			Separator: "-----",
			BatchSize: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, "Hello World!\nHello Universe!\n-----\n", readFile(t, output))
		assert.Equal(t, batch.Stats{Templates: 1, Variations: 2, Batches: 1}, stats)
	})

	t.Run("append", func(t *testing.T) {
		writeFile(t, output, "old\n")

		_, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:     input,
			Output:    output,
			Append:    true,
			BatchSize: 1,
		})
		require.NoError(t, err)

		assert.Equal(t, "old\nHello World!\nHello Universe!\n", readFile(t, output))
	})

	t.Run("missing input leaves output untouched", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.txt")
		fresh := filepath.Join(dir, "fresh.txt")

		_, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:     missing,
			Output:    fresh,
			BatchSize: 10,
		})
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.NoFileExists(t, fresh)
	})

	t.Run("unreadable input leaves output untouched", func(t *testing.T) {
		writeFile(t, output, "old\n")

		// 目录可以打开但读取失败
		_, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:     t.TempDir(),
			Output:    output,
			BatchSize: 10,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read input")
		assert.Equal(t, "old\n", readFile(t, output))
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:  input,
			Output: output,
		})
		require.ErrorIs(t, err, batch.ErrInvalidBatchSize)
	})

	t.Run("flushes accumulated results on error", func(t *testing.T) {
		writeFile(t, input, "[a|b]\n[c|d][e|f]\n")

		_, err := batch.GenerateFile(context.Background(), batch.FileConfig{
			Input:     input,
			Output:    output,
			BatchSize: 100,
		}, batch.WithOrdered(true), batch.WithWorkers(1), batch.WithMaxVariations(2))
		require.ErrorIs(t, err, batch.ErrTooManyVariations)

		assert.Equal(t, "a\nb\n", readFile(t, output))
	})
}
