package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "data/shop.db", cfg.DBPath)
	assert.Equal(t, "data/uploads", cfg.UploadDir)
	assert.Equal(t, "web", cfg.PublicDir)
	assert.Equal(t, "10000", cfg.HTTPPort)
	assert.True(t, cfg.LogConsole)
	assert.Zero(t, cfg.AdminChatID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("ADMIN_CHAT_ID", "-100200300")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_CONSOLE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.EqualValues(t, -100200300, cfg.AdminChatID)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.False(t, cfg.LogConsole)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("ADMIN_PASSWORD", "secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_PASSWORD", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadBadAdminChatID(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("ADMIN_CHAT_ID", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
