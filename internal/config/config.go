// Package config resolves the store path, logging level, and credential
// locations from defaults, config.toml, the environment, and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"taskcli/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "taskcli"

	// ConfigFile is the optional settings file inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// DefaultStoreFile is the task file used when nothing overrides it.
	// It is resolved against the working directory.
	DefaultStoreFile = "tasks.json"

	// DefaultLogLevel applies when neither the file nor env set one.
	DefaultLogLevel = "warn"

	// DefaultGoogleList is the remote list name used by push.
	DefaultGoogleList = "taskcli"
)

// Environment variables that override config.toml.
const (
	EnvFile       = "TASKCLI_FILE"
	EnvLogLevel   = "TASKCLI_LOG_LEVEL"
	EnvGoogleList = "TASKCLI_GOOGLE_LIST"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// StorePath is the task file location.
	StorePath string

	// LogLevel names the minimum level written to stderr.
	LogLevel string

	// GoogleList is the remote list that push mirrors into.
	GoogleList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Now returns the current time. Nil means time.Now.
	Now func() time.Time

	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// fileSettings mirrors config.toml.
type fileSettings struct {
	File       string `toml:"file"`
	LogLevel   string `toml:"log_level"`
	GoogleList string `toml:"google_list"`
}

// New creates a Config with defaults for the given config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskcli or $HOME/.config/taskcli.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:        dir,
		StorePath:  DefaultStoreFile,
		LogLevel:   DefaultLogLevel,
		GoogleList: DefaultGoogleList,
	}
}

// Load builds a Config from defaults, then config.toml in configDir, then
// the environment. Flag values are applied by the caller afterwards.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.loadEnv()
	return cfg, nil
}

func (c *Config) loadFile() error {
	var s fileSettings
	_, err := toml.DecodeFile(c.ConfigPath(), &s)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config file %s: %w", c.ConfigPath(), err)
	}
	if s.File != "" {
		c.StorePath = c.expandHome(s.File)
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}
	if s.GoogleList != "" {
		c.GoogleList = s.GoogleList
	}
	return nil
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvFile); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvGoogleList); v != "" {
		c.GoogleList = v
	}
}

// expandHome expands "~/" and leaves other paths as written.
func (c *Config) expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EffectiveLogLevel is LogLevel, or "debug" when Debug is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// Clock returns the configured time source.
func (c *Config) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

var discard = logging.Discard()

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
