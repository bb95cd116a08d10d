package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override credential and endpoint settings.
const (
	EnvBaseURL  = "KMX_BASE_URL"
	EnvUsername = "KMX_USERNAME"
	EnvPassword = "KMX_PASSWORD"
	EnvToken    = "KMX_TOKEN"
)

var envKeys = []string{EnvBaseURL, EnvUsername, EnvPassword, EnvToken}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Render      RenderConfig      `toml:"render"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// APIConfig contains settings for the management API client.
type APIConfig struct {
	BaseURL           string  `toml:"base_url"`
	LoginPath         string  `toml:"login_path"`
	OpenBrowser       bool    `toml:"open_browser"`
	RequireCredential bool    `toml:"require_credential"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Concurrency       int     `toml:"concurrency"`
}

// CredentialsConfig contains the credential used for the authorization header.
//
// A token takes precedence over username/password.
type CredentialsConfig struct {
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Token     string `toml:"token"`
	TokenType string `toml:"token_type"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RenderConfig contains template rendering settings.
type RenderConfig struct {
	TemplatesDir string `toml:"templates_dir"`
	Locale       string `toml:"locale"`
}

// ServerConfig contains settings for the list preview server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the settings the client cannot work without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.API.LoginPath, "/") {
		return fmt.Errorf("%w: api.login_path must start with /", ErrInvalidConfig)
	}
	if c.API.Concurrency < 0 {
		return fmt.Errorf("%w: api.concurrency must not be negative", ErrInvalidConfig)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: api.requests_per_second must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadEnv reads KMX_* variables from the dotenv file at path (if it exists) and the process environment.
//
// Process environment values win over the file.
func LoadEnv(path string) (map[string]string, error) {
	env := make(map[string]string)

	if path != "" {
		fileEnv, err := godotenv.Read(path)
		switch {
		case err == nil:
			for _, k := range envKeys {
				if v, ok := fileEnv[k]; ok {
					env[k] = v
				}
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
	}

	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides config values with the non-empty KMX_* entries of env.
func (c *Config) ApplyEnv(env map[string]string) {
	if v := env[EnvBaseURL]; v != "" {
		c.API.BaseURL = v
	}
	if v := env[EnvUsername]; v != "" {
		c.Credentials.Username = v
	}
	if v := env[EnvPassword]; v != "" {
		c.Credentials.Password = v
	}
	if v := env[EnvToken]; v != "" {
		c.Credentials.Token = v
	}
}
