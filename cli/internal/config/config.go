// Package config loads CLI settings from config files, environment variables
// and .env files.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for config probing; swapped in tests.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	ConfigPath string
	OutputPath string
	HistoryDB  string
	Workers    int
}

// Load resolves configuration from .domainforge.yaml (working directory,
// home, ~/.config/domainforge), DOMAINFORGE_* environment variables and .env
// files, in ascending priority.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".domainforge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "domainforge"))

	viper.SetEnvPrefix("DOMAINFORGE")
	viper.AutomaticEnv()

	viper.SetDefault("config_path", "domain.yaml")
	viper.SetDefault("output_path", "./generated")
	viper.SetDefault("history_db", filepath.Join(home, ".domainforge", "history.db"))
	viper.SetDefault("workers", 0)

	// Missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		ConfigPath: viper.GetString("config_path"),
		OutputPath: viper.GetString("output_path"),
		HistoryDB:  viper.GetString("history_db"),
		Workers:    viper.GetInt("workers"),
	}
	return cfg, nil
}

// EnsureHistoryDir creates the directory holding the history database.
func EnsureHistoryDir(cfg *Config) error {
	return os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0o755)
}
