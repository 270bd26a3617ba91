package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mdimage/mdimage/internal/config"
)

func runConfigCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewConfigCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd()
	assert.Equal(t, "config", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"view", "init"}, names)
}

func TestConfigView_Defaults(t *testing.T) {
	t.Setenv("MDIMAGE_CONFIG", t.TempDir())

	out, err := runConfigCmd(t, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "# config file: (none)")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, *config.DefaultConfig(), cfg)
}

func TestConfigView_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MDIMAGE_CONFIG", dir)
	t.Setenv("MDIMAGE_BYTES_PER_LINE", "8")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: flash.bin\n"), 0o644))

	out, err := runConfigCmd(t, "view")
	require.NoError(t, err)
	assert.Contains(t, out, "# config file: "+filepath.Join(dir, "config.yaml"))
	assert.Contains(t, out, "# env: MDIMAGE_BYTES_PER_LINE")

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 8, cfg.BytesPerLine)
	assert.Equal(t, "flash.bin", cfg.Output)
}

func TestConfigView_JSON(t *testing.T) {
	t.Setenv("MDIMAGE_CONFIG", t.TempDir())

	out, err := runConfigCmd(t, "view", "--format", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "#")

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 16, cfg.BytesPerLine)
}

func TestConfigView_RejectsTable(t *testing.T) {
	t.Setenv("MDIMAGE_CONFIG", t.TempDir())

	_, err := runConfigCmd(t, "view", "--format", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MDIMAGE_CONFIG", dir)
	path := filepath.Join(dir, "config.yaml")

	out, err := runConfigCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, _, err := config.NewLayeredLoader(config.NewLoader()).Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = runConfigCmd(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runConfigCmd(t, "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	t.Setenv("MDIMAGE_CONFIG", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "mdimage.yaml")

	_, err := runConfigCmd(t, "init", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
