package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, "vargen_source_text.txt", cfg.Generate.Input)
	assert.Equal(t, "vargen_result_text.txt", cfg.Generate.Output)
	assert.Empty(t, cfg.Generate.Separator)
	assert.False(t, cfg.Generate.Append)
	assert.Equal(t, 10, cfg.Generate.BatchSize)
	assert.Zero(t, cfg.Generate.Workers)
	assert.Zero(t, cfg.Generate.MaxVariations)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Profile.Mode)
}
