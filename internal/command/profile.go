package command

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pkg/profile"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/config"
)

// profileModes 支持的性能分析模式。
var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// Stopper 停止正在进行的性能分析并写出结果。
type Stopper interface{ Stop() }

type noopStopper struct{}

func (noopStopper) Stop() {}

// ProfileModes 返回支持的分析模式（已排序）。
func ProfileModes() []string {
	return slices.Sorted(maps.Keys(profileModes))
}

// StartProfile 按配置启动性能分析。
//
// cfg.Mode 为空时不做任何事并返回空操作的 Stopper。
func StartProfile(cfg config.ProfileConfig) (Stopper, error) {
	if cfg.Mode == "" {
		return noopStopper{}, nil
	}

	mode, ok := profileModes[cfg.Mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (supported: %v)", cfg.Mode, ProfileModes())
	}

	opts := []func(*profile.Profile){mode, profile.Quiet, profile.NoShutdownHook}
	if cfg.Path != "" {
		opts = append(opts, profile.ProfilePath(cfg.Path))
	}

	return profile.Start(opts...), nil
}
