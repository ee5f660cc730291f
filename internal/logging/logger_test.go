package logging

import (
	"os"
	"path/filepath"
	"testing"

	"estudio/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	appCfg := config.AppConfig{
		Name:        "estudio-test",
		Environment: "test",
		Version:     "0.0.0",
	}

	t.Run("DefaultStdout", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "info", Output: "stdout"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("Console", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "warn", Output: "stderr", Format: "console"}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Nil(t, closer)
	})

	t.Run("File", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "estudio.log")
		cfg := config.LoggingConfig{Level: "error", Output: "file", FilePath: logPath}
		logger, closer, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		require.NotNil(t, closer)
		closer.Close()

		_, err = os.Stat(logPath)
		assert.NoError(t, err)
	})

	t.Run("FileMissingPath", func(t *testing.T) {
		cfg := config.LoggingConfig{Output: "file"}
		_, _, err := New(cfg, appCfg)
		assert.Error(t, err)
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		cfg := config.LoggingConfig{Level: "chatty"}
		logger, _, err := New(cfg, appCfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("VersionOmittedWhenEmpty", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "estudio.log")
		cfg := config.LoggingConfig{Level: "info", Output: "file", FilePath: logPath}
		logger, closer, err := New(cfg, config.AppConfig{Name: "estudio-test", Environment: "test"})
		require.NoError(t, err)
		logger.Info().Msg("hello")
		closer.Close()

		line, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(line), `"app":"estudio-test"`)
		assert.NotContains(t, string(line), `"version"`)
	})
}

func TestComponentTagsLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "estudio.log")
	cfg := config.LoggingConfig{Level: "info", Output: "file", FilePath: logPath}
	base, closer, err := New(cfg, config.AppConfig{Name: "estudio-test", Environment: "test", Version: "0.0.0"})
	require.NoError(t, err)

	worker := Component(base, "export-worker")
	worker.Info().Msg("run complete")
	closer.Close()

	line, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(line), `"component":"export-worker"`)
	assert.Contains(t, string(line), `"version":"0.0.0"`)
}
