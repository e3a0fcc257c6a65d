// Package config resolves caller's on-disk locations and loads its settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once per
// invocation by Load and passed to the components that need it.
type Config struct {
	DataDir      string        `mapstructure:"data_dir"`
	CommandsFile string        `mapstructure:"commands_file"`
	Log          LogConfig     `mapstructure:"log"`
	AI           AIConfig      `mapstructure:"ai"`
	Git          GitConfig     `mapstructure:"git"`
	Update       UpdateConfig  `mapstructure:"update"`
	History      HistoryConfig `mapstructure:"history"`
}

// LogConfig controls the rotating file logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// AIConfig controls the natural-language command resolver.
type AIConfig struct {
	Model           string   `mapstructure:"model"`
	AllowedCommands []string `mapstructure:"allowed_commands"`
	KeyService      string   `mapstructure:"key_service"`
	KeyAccount      string   `mapstructure:"key_account"`
}

// GitConfig controls the git menu.
type GitConfig struct {
	Path   string `mapstructure:"path"`
	Remote string `mapstructure:"remote"`
}

// UpdateConfig describes where caller's own checkout lives and how to rebuild it.
type UpdateConfig struct {
	RepoDir     string   `mapstructure:"repo_dir"`
	Remote      string   `mapstructure:"remote"`
	Branch      string   `mapstructure:"branch"`
	InstallArgs []string `mapstructure:"install_args"`
}

// HistoryConfig controls the execution log.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// DefaultAllowedCommands are the programs an AI-resolved command may start.
var DefaultAllowedCommands = []string{
	"ls", "cat", "pwd", "echo", "head", "tail", "grep", "find", "wc",
	"sort", "uniq", "diff", "du", "df", "ps", "which", "whoami", "date",
	"tree", "file", "stat", "git", "npm", "node", "go", "python3", "pip",
	"docker", "kubectl", "curl", "ping", "mkdir", "touch", "cp", "mv",
}

// Default returns a Config rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir:      dataDir,
		CommandsFile: filepath.Join(dataDir, "caller-cli-commands.json"),
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dataDir, "caller.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		AI: AIConfig{
			Model:           "gemini-2.0-flash",
			AllowedCommands: append([]string(nil), DefaultAllowedCommands...),
			KeyService:      "caller-cli",
			KeyAccount:      "gemini",
		},
		Git: GitConfig{
			Path:   "git",
			Remote: "origin",
		},
		Update: UpdateConfig{
			RepoDir:     filepath.Join(dataDir, "src"),
			Remote:      "origin",
			Branch:      "main",
			InstallArgs: []string{"./cmd/caller"},
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(dataDir, "caller.db"),
		},
	}
}

// Load builds the configuration from defaults, an optional yaml file and
// CALLER_* environment variables, in increasing precedence. When configPath
// is empty, <dataDir>/config.yaml is used if present.
func Load(configPath, dataDir string) (*Config, error) {
	if dataDir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = d
	}
	cfg := Default(dataDir)

	v := viper.New()
	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dataDir)
	}

	v.SetEnvPrefix("CALLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// explicit path overrides win over anything viper resolved
	if p := os.Getenv(EnvCommandsFile); p != "" {
		cfg.CommandsFile = p
	}
	if p := os.Getenv(EnvCallerDB); p != "" {
		cfg.History.DBPath = p
	}

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("commands_file", cfg.CommandsFile)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("ai.model", cfg.AI.Model)
	v.SetDefault("ai.allowed_commands", cfg.AI.AllowedCommands)
	v.SetDefault("ai.key_service", cfg.AI.KeyService)
	v.SetDefault("ai.key_account", cfg.AI.KeyAccount)
	v.SetDefault("git.path", cfg.Git.Path)
	v.SetDefault("git.remote", cfg.Git.Remote)
	v.SetDefault("update.repo_dir", cfg.Update.RepoDir)
	v.SetDefault("update.remote", cfg.Update.Remote)
	v.SetDefault("update.branch", cfg.Update.Branch)
	v.SetDefault("update.install_args", cfg.Update.InstallArgs)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.db_path", cfg.History.DBPath)
}

func (c *Config) expandPaths() {
	c.DataDir = expandPath(c.DataDir)
	c.CommandsFile = expandPath(c.CommandsFile)
	c.Log.File = expandPath(c.Log.File)
	c.Update.RepoDir = expandPath(c.Update.RepoDir)
	c.History.DBPath = expandPath(c.History.DBPath)
}

func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return os.ExpandEnv(path)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.CommandsFile == "" {
		return errors.New("commands_file cannot be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.AI.Model == "" {
		return errors.New("ai.model cannot be empty")
	}
	if len(c.AI.AllowedCommands) == 0 {
		return errors.New("ai.allowed_commands must list at least one program")
	}
	if c.Git.Path == "" {
		return errors.New("git.path cannot be empty")
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return errors.New("history.db_path cannot be empty when history is enabled")
	}
	return nil
}
