/*
Package config manages the TOML config for hintserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/draftkit/hintserve/internal/utils"
	"github.com/draftkit/hintserve/pkg/ngram"
)

// Config holds the entire config structure
type Config struct {
	Suggest SuggestConfig `toml:"suggest"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// SuggestConfig controls the suggestion engines.
type SuggestConfig struct {
	MaxWords    int    `toml:"max_words"`
	HistoryFile string `toml:"history_file"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxInputLen int `toml:"max_input_len"`
	MaxLimit    int `toml:"max_limit"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int `toml:"default_limit"`
	DefaultMaxWords int `toml:"default_max_words"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suggest: SuggestConfig{
			MaxWords:    ngram.DefaultMaxWords,
			HistoryFile: filepath.Join("data", "chat_history.json"),
		},
		Server: ServerConfig{
			MaxInputLen: 280,
			MaxLimit:    32,
		},
		CLI: CliConfig{
			DefaultLimit:    8,
			DefaultMaxWords: ngram.DefaultMaxWords,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/hintserve
// 2. ~/Library/Application Support/hintserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "hintserve")
	if utils.DirWritable(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "hintserve")
	if utils.DirWritable(macOSPath) {
		return macOSPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/hintserve/config.toml
// 3. Builtin defaults
func LoadWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if utils.FileExists(customPath) {
			cfg, err := Load(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using builtin defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := Init(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// Init loads config from file or creates a default one if missing.
func Init(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using builtin defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := Save(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using builtin defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	return Load(configPath)
}

// Load reads a TOML config file on top of the builtin defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", configPath, err)
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

// tryPartialParse salvages whatever valid sections a broken config
// file still has, defaults covering the rest.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	parsed, err := utils.ParseTOMLLoose(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(parsed, "suggest"); ok {
		extractSuggestConfig(section, &cfg.Suggest)
	}
	if section, ok := utils.ExtractSection(parsed, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(parsed, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := utils.ExtractInt(data, "max_words"); ok {
		suggest.MaxWords = val
	}
	if val, ok := utils.ExtractString(data, "history_file"); ok {
		suggest.HistoryFile = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_input_len"); ok {
		server.MaxInputLen = val
	}
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_max_words"); ok {
		cli.DefaultMaxWords = val
	}
}

// Save writes the config into a TOML file.
func Save(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// Update changes suggestion settings and saves to file.
func (c *Config) Update(configPath string, maxWords *int, historyFile *string) error {
	if maxWords != nil {
		c.Suggest.MaxWords = *maxWords
	}
	if historyFile != nil {
		c.Suggest.HistoryFile = *historyFile
	}
	return Save(c, configPath)
}
