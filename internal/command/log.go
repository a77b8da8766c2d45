package command

import (
	"fmt"
	"io"
	"log/slog"
)

// SetupLogger 安装写入 w 的文本日志处理器作为默认 slog logger。
//
// level 取值 debug|info|warn|error，大小写不敏感。
func SetupLogger(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))

	return nil
}
