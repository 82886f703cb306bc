package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvConfig, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverrides(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "beaverbuild.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
project:
  application_id: com.ricent.beaverai.staging
  min_sdk: 24
flutter:
  project_dir: /src/app
log:
  level: debug
  format: json
history:
  enabled: false
`), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "com.ricent.beaverai.staging", cfg.Project.ApplicationID)
	assert.Equal(t, "com.ricent.beaverai", cfg.Project.Namespace)
	assert.Equal(t, 24, cfg.Project.MinSdk)
	assert.Equal(t, 36, cfg.Project.CompileSdk)
	assert.Equal(t, "/src/app", cfg.Flutter.ProjectDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.History.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("BEAVERBUILD_PROJECT_TARGET_SDK", "35")
	t.Setenv("BEAVERBUILD_LOG_LEVEL", "info")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 35, cfg.Project.TargetSdk)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	isolate(t)
	t.Setenv("BEAVERBUILD_LOG_LEVEL", "loud")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
