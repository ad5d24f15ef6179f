package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type NotionConfig struct {
	Token      string
	DatabaseID string
}

// Config is everything the client needs to run. The backend base URL gets a
// fixed /api prefix appended by the gateway client.
type Config struct {
	// APIURL selects the backend; APPTRACK_API_URL overrides it.
	APIURL string
	// StatePath is the local SQLite file holding session + offline cache.
	StatePath string
	LogLevel  string
	Notion    NotionConfig
}

// Load reads config.yaml (optional) and APPTRACK_* env vars, applying
// defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "apptrack"))
	}

	v.SetEnvPrefix("APPTRACK")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg := &Config{
		APIURL:    v.GetString("api_url"),
		StatePath: v.GetString("state_path"),
		LogLevel:  v.GetString("log_level"),
		Notion: NotionConfig{
			Token:      v.GetString("notion_token"),
			DatabaseID: v.GetString("notion_db_id"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("log_level", "info")

	statePath := "apptrack.sqlite"
	if dir, err := os.UserConfigDir(); err == nil {
		statePath = filepath.Join(dir, "apptrack", "state.db")
	}
	v.SetDefault("state_path", statePath)
}
