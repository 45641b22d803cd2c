package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	xdgAppName = "dayblock"
	configName = "config"
	configFile = configName + ".json"
	envPrefix  = "DAYBLOCK"

	DefaultCalendar = "Dayblock"
	DefaultBackend  = "file"
	DefaultLogLevel = "info"
)

// Config is the application setup. User preferences live in the store, not here.
type Config struct {
	Calendar string        `json:"calendar" mapstructure:"calendar"`
	Backend  string        `json:"backend" mapstructure:"backend"`
	DataDir  string        `json:"data_dir" mapstructure:"data_dir"`
	LogLevel string        `json:"log_level" mapstructure:"log_level"`
	Latency  time.Duration `json:"latency" mapstructure:"latency"` // simulated think time before generating
}

// GetConfigDir returns $DAYBLOCK_HOME, or ~/.config/dayblock.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(envPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func Load() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json in dir with DAYBLOCK_* environment overrides.
// A missing file yields the defaults.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("calendar", DefaultCalendar)
	v.SetDefault("backend", DefaultBackend)
	v.SetDefault("data_dir", dir)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("latency", time.Duration(0))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Calendar == "" {
		cfg.Calendar = DefaultCalendar
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dir
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return SaveTo(dir, cfg)
}

func SaveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, configFile), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
