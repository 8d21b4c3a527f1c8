// Package config handles the configuration directory, config.yaml, .env
// files and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"taskdeck/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// ConfigFile is the optional YAML settings filename.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv filename, read from the working
	// directory and from the config directory.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename (googletasks backend).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (googletasks backend).
	TokenFile = "token.json"

	// DefaultAPIURL is used when no API URL is configured.
	DefaultAPIURL = "http://localhost:5000/api"

	// DefaultGoogleList is the Google Tasks list used by the googletasks backend.
	DefaultGoogleList = "@default"
)

// Backend names.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

// Environment variables.
const (
	EnvAPIURL  = "TASKDECK_API_URL"
	EnvBackend = "TASKDECK_BACKEND"
	EnvLogFile = "TASKDECK_LOG_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// APIURL is the base address of the remote task service.
	APIURL string

	// Backend selects the service implementation (rest or googletasks).
	Backend string

	// GoogleList is the task list ID used by the googletasks backend.
	GoogleList string

	// Palette is the closed set of task colours.
	Palette service.Palette

	// DefaultColor is the colour new drafts start with.
	DefaultColor string

	// GroupCompleted lists incomplete tasks before completed ones.
	GroupCompleted bool

	// LogFile, when set, receives JSON logs.
	LogFile string
}

// fileConfig mirrors config.yaml. Pointer fields distinguish unset from zero.
type fileConfig struct {
	APIURL         string   `yaml:"api_url"`
	Backend        string   `yaml:"backend"`
	GoogleList     string   `yaml:"google_list"`
	Palette        []string `yaml:"palette"`
	DefaultColor   string   `yaml:"default_color"`
	GroupCompleted *bool    `yaml:"group_completed"`
	LogFile        string   `yaml:"log_file"`
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or $HOME/.config/taskdeck.
// Precedence: environment (including .env files) over config.yaml over defaults.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load(EnvFile)
	_ = godotenv.Load(filepath.Join(dir, EnvFile))

	fc, err := readFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:            dir,
		APIURL:         firstNonEmpty(os.Getenv(EnvAPIURL), fc.APIURL, DefaultAPIURL),
		Backend:        strings.ToLower(firstNonEmpty(os.Getenv(EnvBackend), fc.Backend, BackendREST)),
		GoogleList:     firstNonEmpty(fc.GoogleList, DefaultGoogleList),
		Palette:        service.DefaultPalette,
		DefaultColor:   firstNonEmpty(fc.DefaultColor, service.DefaultColor),
		GroupCompleted: true,
		LogFile:        firstNonEmpty(os.Getenv(EnvLogFile), fc.LogFile),
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if fc.GroupCompleted != nil {
		cfg.GroupCompleted = *fc.GroupCompleted
	}

	if len(fc.Palette) > 0 {
		palette := make(service.Palette, 0, len(fc.Palette))
		for _, c := range fc.Palette {
			palette = append(palette, strings.ToLower(strings.TrimSpace(c)))
		}
		if err := palette.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		cfg.Palette = palette
	}
	if !cfg.Palette.Contains(cfg.DefaultColor) {
		cfg.DefaultColor = cfg.Palette[0]
	}

	switch cfg.Backend {
	case BackendREST, BackendGoogleTasks:
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}

	return cfg, nil
}

// readFile loads config.yaml. A missing file yields an empty config.
func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return fc, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
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
// Directory is created with mode 0700.
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

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
