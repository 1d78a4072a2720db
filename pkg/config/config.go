package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Model   string        `mapstructure:"model"`
	Engine  string        `mapstructure:"engine"`
	Chat    ChatConfig    `mapstructure:"chat"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the backend endpoints
type ServerConfig struct {
	ChatURL   string `mapstructure:"chat_url"`
	EventsURL string `mapstructure:"events_url"`
}

// ChatConfig holds chat behavior configuration
type ChatConfig struct {
	SystemPrompt string `mapstructure:"system_prompt"`
	TimeoutSecs  int    `mapstructure:"timeout_seconds"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Level    string `mapstructure:"level"`
	Preserve bool   `mapstructure:"preserve"`
}

var global *Config

// Init loads configuration from the optional config file, environment
// variables and defaults, in that order of precedence.
func Init(cfgFile string) error {
	viper.SetDefault("server.chat_url", "http://localhost:8000/chat")
	viper.SetDefault("server.events_url", "ws://localhost:8000/ws")
	viper.SetDefault("model", "ghost-local")
	viper.SetDefault("engine", "graph")
	viper.SetDefault("chat.system_prompt", "")
	viper.SetDefault("chat.timeout_seconds", 120)
	viper.SetDefault("logging.log_file", "ghost.log")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.preserve", false)

	viper.SetEnvPrefix("GHOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ghost")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(SettingsDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	global = &cfg
	return nil
}

// Get returns the loaded configuration, falling back to defaults if Init
// was never called.
func Get() *Config {
	if global == nil {
		if err := Init(""); err != nil {
			global = &Config{}
		}
	}
	return global
}

// SettingsDir returns the per-user settings directory
func SettingsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghost"
	}
	return filepath.Join(home, ".ghost")
}

// BuildSettingsPath resolves a filename inside the settings directory
func BuildSettingsPath(filename string) string {
	return filepath.Join(SettingsDir(), filename)
}
