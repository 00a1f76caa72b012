/*
File   : vellum/config/config_test.go
*/
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultEntryFuncIsMain(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "main", cfg.EntryFunc)
	assert.True(t, cfg.Color)
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().EntryFunc, cfg.EntryFunc)
}

func TestConfig_LoadOverlaysOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vellum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entry_func: start\ncolor: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "start", cfg.EntryFunc)
	assert.False(t, cfg.Color)
	assert.Equal(t, Default().Prompt, cfg.Prompt)
}

func TestConfig_LoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vellum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entry_func: [this is not a string"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
