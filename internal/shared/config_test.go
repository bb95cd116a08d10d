package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./kmx.db" {
			t.Errorf("expected database path ./kmx.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "http://127.0.0.1:8080" {
			t.Errorf("expected base URL http://127.0.0.1:8080, got %s", config.API.BaseURL)
		}

		if config.API.LoginPath != "/login" {
			t.Errorf("expected login path /login, got %s", config.API.LoginPath)
		}

		if config.API.RequireCredential {
			t.Error("expected require_credential to default to false")
		}

		if config.Server.Addr != "127.0.0.1:8090" {
			t.Errorf("expected server addr 127.0.0.1:8090, got %s", config.Server.Addr)
		}

		if config.Credentials.TokenType != "Bearer" {
			t.Errorf("expected token type Bearer, got %s", config.Credentials.TokenType)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to validate, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://kafka.example.com"
concurrency = 2

[credentials]
username = "admin"
password = "secret"

[database]
path = "/custom/path.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://kafka.example.com" {
			t.Errorf("expected base URL https://kafka.example.com, got %s", config.API.BaseURL)
		}
		if config.API.Concurrency != 2 {
			t.Errorf("expected concurrency 2, got %d", config.API.Concurrency)
		}
		if config.API.LoginPath != "/login" {
			t.Errorf("expected unset login path to keep default, got %s", config.API.LoginPath)
		}
		if config.Credentials.Username != "admin" {
			t.Errorf("expected username admin, got %s", config.Credentials.Username)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(c *Config)
		}{
			{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = " " }},
			{name: "relative login path", mutate: func(c *Config) { c.API.LoginPath = "login" }},
			{name: "negative concurrency", mutate: func(c *Config) { c.API.Concurrency = -1 }},
			{name: "negative rate", mutate: func(c *Config) { c.API.RequestsPerSecond = -2 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}

func TestEnv(t *testing.T) {
	t.Run("LoadEnv Reads Dotenv File", func(t *testing.T) {
		t.Setenv(EnvUsername, "")
		t.Setenv(EnvToken, "")
		os.Unsetenv(EnvUsername)
		os.Unsetenv(EnvToken)

		path := filepath.Join(t.TempDir(), ".env")
		content := "KMX_USERNAME=filed\nKMX_TOKEN=abc\nUNRELATED=1\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		env, err := LoadEnv(path)
		if err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if env[EnvUsername] != "filed" {
			t.Errorf("expected username from file, got %q", env[EnvUsername])
		}
		if env[EnvToken] != "abc" {
			t.Errorf("expected token from file, got %q", env[EnvToken])
		}
		if _, ok := env["UNRELATED"]; ok {
			t.Error("expected unrelated keys to be ignored")
		}
	})

	t.Run("Process Environment Wins", func(t *testing.T) {
		t.Setenv(EnvBaseURL, "http://from-env")

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("KMX_BASE_URL=http://from-file\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		env, err := LoadEnv(path)
		if err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if env[EnvBaseURL] != "http://from-env" {
			t.Errorf("expected process env to win, got %q", env[EnvBaseURL])
		}
	})

	t.Run("Missing File Is Not An Error", func(t *testing.T) {
		if _, err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Errorf("expected no error for missing env file, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		config.ApplyEnv(map[string]string{
			EnvBaseURL:  "https://override",
			EnvPassword: "pw",
			EnvToken:    "",
		})

		if config.API.BaseURL != "https://override" {
			t.Errorf("expected base URL override, got %s", config.API.BaseURL)
		}
		if config.Credentials.Password != "pw" {
			t.Errorf("expected password override, got %s", config.Credentials.Password)
		}
		if config.Credentials.Token != "" {
			t.Errorf("expected empty value to be ignored, got %s", config.Credentials.Token)
		}
	})
}
