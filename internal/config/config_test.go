package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.StatePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APPTRACK_API_URL", "https://tracker.example.com")
	t.Setenv("APPTRACK_LOG_LEVEL", "debug")
	t.Setenv("APPTRACK_NOTION_TOKEN", "secret")
	t.Setenv("APPTRACK_NOTION_DB_ID", "db123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.example.com", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.Notion.Token)
	assert.Equal(t, "db123", cfg.Notion.DatabaseID)
}
