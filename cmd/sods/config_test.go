package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)

	path := filepath.Join(t.TempDir(), "sods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_repeat: 500\nlocale: de-DE\npretty: true\n"), 0644))

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, fileConfig{MaxRepeat: 500, Locale: "de-DE", Pretty: true}, cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigOverride(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--max-repeat", "20", "--verbose"}))

	cfg := fileConfig{MaxRepeat: 500, Locale: "de-DE", Pretty: true}
	cfg.override(cmd)
	assert.Equal(t, fileConfig{MaxRepeat: 20, Locale: "de-DE", Pretty: true, Verbose: true}, cfg)
}

func TestSheetFileName(t *testing.T) {
	assert.Equal(t, "sheet3", sheetFileName("", 2))
	assert.Equal(t, "Data", sheetFileName("Data", 0))
	assert.Equal(t, "passwd", sheetFileName("../../etc/passwd", 0))
}
