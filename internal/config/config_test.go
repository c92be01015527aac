package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("TOTEMBOT_LOG_LEVEL", "")
	os.Unsetenv("TOTEMBOT_LOG_LEVEL")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.AnswerDelay)
	assert.Equal(t, "https://moscowzoo.ru/my-zoo/become-a-guardian/", cfg.GuardianURL)
	assert.Empty(t, cfg.CatalogPath)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TOTEMBOT_CATALOG", "/srv/questions.txt")
	t.Setenv("TOTEMBOT_ANSWER_DELAY", "250ms")
	t.Setenv("TOTEMBOT_DEBUG", "true")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "/srv/questions.txt", cfg.CatalogPath)
	assert.Equal(t, 250*time.Millisecond, cfg.AnswerDelay)
	assert.True(t, cfg.Debug)
	assert.NoError(t, cfg.RequireToken())
}

func TestParseRejectsNegativeDelay(t *testing.T) {
	t.Setenv("TOTEMBOT_ANSWER_DELAY", "-1s")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOTEMBOT_ANSWER_DELAY")
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("TOTEMBOT_ANSWER_DELAY", "soon")

	_, err := Parse()
	require.Error(t, err)
}

func TestRequireToken(t *testing.T) {
	err := Config{}.RequireToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.env")
	require.NoError(t, os.WriteFile(path, []byte("TOTEMBOT_ASSETS_DIR=/srv/assets\n"), 0o644))
	t.Setenv("TOTEMBOT_ASSETS_DIR", "")
	os.Unsetenv("TOTEMBOT_ASSETS_DIR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.AssetsDir)
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
