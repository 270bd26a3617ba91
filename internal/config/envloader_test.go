package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDIMAGE_BYTES_PER_LINE", "32")
	t.Setenv("MDIMAGE_OUTPUT", "flash.bin")
	t.Setenv("MDIMAGE_MARKERS", "md.w 0x, md.l 0x")
	t.Setenv("MDIMAGE_MAX_LOG_SIZE", "0x1000")
	t.Setenv("MDIMAGE_EXTRACT", "true")
	t.Setenv("MDIMAGE_EXTRACT_DIR", "/tmp/out")
	t.Setenv("MDIMAGE_LOG_LEVEL", "debug")
	t.Setenv("MDIMAGE_LOG_PRETTY", "false")

	cfg := DefaultConfig()
	applied, err := LoadFromEnv(cfg)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.BytesPerLine)
	assert.Equal(t, "flash.bin", cfg.Output)
	assert.Equal(t, []string{"md.w 0x", "md.l 0x"}, cfg.Markers)
	assert.Equal(t, int64(0x1000), cfg.MaxLogSize)
	assert.True(t, cfg.Extract.Enabled)
	assert.Equal(t, "/tmp/out", cfg.Extract.Dir)
	assert.Equal(t, "binwalk", cfg.Extract.Binary, "unset variables keep their value")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.Len(t, applied, 8)
	assert.Contains(t, applied, "MDIMAGE_BYTES_PER_LINE")
	assert.NotContains(t, applied, "MDIMAGE_EXTRACT_BINARY")
}

func TestLoadFromEnv_Empty(t *testing.T) {
	t.Setenv("MDIMAGE_OUTPUT", "")

	cfg := DefaultConfig()
	applied, err := LoadFromEnv(cfg)
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid integer", "MDIMAGE_BYTES_PER_LINE", "sixteen"},
		{"invalid int64", "MDIMAGE_MAX_LOG_SIZE", "1MB"},
		{"invalid boolean", "MDIMAGE_EXTRACT", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadFromEnv(DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadFromEnv_NilPointer(t *testing.T) {
	var cfg *Config
	applied, err := LoadFromEnv(cfg)
	require.NoError(t, err)
	assert.Empty(t, applied)
}
