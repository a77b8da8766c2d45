package command_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/command"
	"github.com/lwmacct/251207-go-pkg-vargen/internal/config"
)

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, command.SetupLogger(&buf, "WARN"))

	slog.Info("hidden")
	slog.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	err := command.SetupLogger(&bytes.Buffer{}, "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestStartProfile_Disabled(t *testing.T) {
	stop, err := command.StartProfile(config.ProfileConfig{})
	require.NoError(t, err)
	assert.NotPanics(t, stop.Stop)
}

func TestStartProfile_UnknownMode(t *testing.T) {
	_, err := command.StartProfile(config.ProfileConfig{Mode: "gpu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpu")
}

func TestStartProfile_CPU(t *testing.T) {
	dir := t.TempDir()

	stop, err := command.StartProfile(config.ProfileConfig{Mode: "cpu", Path: dir})
	require.NoError(t, err)
	stop.Stop()

	assert.FileExists(t, dir+"/cpu.pprof")
}

func TestProfileModes(t *testing.T) {
	assert.Equal(t, []string{"allocs", "block", "cpu", "goroutine", "mem", "mutex", "trace"}, command.ProfileModes())
}
