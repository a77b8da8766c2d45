package generate

import (
	"fmt"
	"strings"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/config"
)

// applyLegacyArgs 应用旧版命令行参数。
//
// 支持两种形式，key=value 优先于位置参数：
//   - key=value：append、separator、input_filename、output_filename、analyze_speed
//   - 位置参数：analyze_speed append separator input_filename output_filename
//
// analyze_speed 仅为兼容保留，耗时总会记录在完成日志中。
// append 的取值为 true 或 append 时启用追加（大小写不敏感）。
func applyLegacyArgs(cfg *config.GenerateConfig, args []string) error {
	var positional []string
	keyed := make(map[string]string)

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			positional = append(positional, arg)

			continue
		}
		switch key {
		case "analyze_speed", "append", "separator", "input_filename", "output_filename":
			keyed[key] = value
		default:
			return fmt.Errorf("unknown argument %q", key)
		}
	}

	// 位置参数按顺序对应下列 key，未被 key=value 覆盖时生效
	order := []string{"analyze_speed", "append", "separator", "input_filename", "output_filename"}
	if len(positional) > len(order) {
		return fmt.Errorf("too many positional arguments: %d (max %d)", len(positional), len(order))
	}
	for i, value := range positional {
		if _, ok := keyed[order[i]]; !ok {
			keyed[order[i]] = value
		}
	}

	if v, ok := keyed["append"]; ok {
		v = strings.ToLower(v)
		cfg.Append = v == "true" || v == "append"
	}
	if v, ok := keyed["separator"]; ok {
		cfg.Separator = v
	}
	if v, ok := keyed["input_filename"]; ok {
		cfg.Input = v
	}
	if v, ok := keyed["output_filename"]; ok {
		cfg.Output = v
	}

	return nil
}
