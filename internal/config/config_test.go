package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docmerge/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)
	assert.True(t, cfg.Spacing())
}

func TestLoad_ReadsAllFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docmerge.yml", `
includeFirstCell: true
imageWidthInches: 3.5
subheadingEmphasis: [bold, underline]
tableSpacing: false
logLevel: debug
altText: true
ocrLanguage: eng+fra
`)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeFirstCell)
	assert.InDelta(t, 3.5, cfg.ImageWidthInches, 1e-9)
	assert.Equal(t, []string{"bold", "underline"}, cfg.SubheadingEmphasis)
	assert.False(t, cfg.Spacing())
	assert.True(t, cfg.AltText)
	assert.Equal(t, "eng+fra", cfg.OCRLanguage)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_FallsBackToYAMLExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docmerge.yaml", "includeFirstCell: true\n")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeFirstCell)
}

func TestLoad_PrefersYML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docmerge.yml", "imageWidthInches: 1\n")
	writeFile(t, dir, "docmerge.yaml", "imageWidthInches: 4\n")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cfg.ImageWidthInches, 1e-9)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docmerge.yml", "includeFirstCell: [not a bool\n")

	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docmerge.yml")
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	level, err := (&config.Config{}).Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = (&config.Config{LogLevel: " INFO "}).Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = (&config.Config{LogLevel: "loud"}).Level()
	assert.Error(t, err)
}

func TestConfig_Language(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{OCRLanguage: " deu "}
	assert.Equal(t, "deu", cfg.Language(""))
	assert.Equal(t, "fra", cfg.Language("fra"))
	assert.Empty(t, (&config.Config{}).Language("  "))
}
