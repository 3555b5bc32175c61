package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "easylease.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  esign:\n    testMode: true\n  jwtKey: file\n"), 0o600))
	t.Setenv("APP_ESIGN_TESTMODE", "false")

	require.NoError(t, loadConfig(path))
	assert.False(t, viper.GetBool("app.esign.testMode"))
	assert.Equal(t, "file", viper.GetString("app.jwtKey"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	assert.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	setupLogging(false, false)
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	setupLogging(true, false)
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
