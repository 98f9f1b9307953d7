package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Database  DatabaseConfig  `yaml:"database"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	MCP       MCPConfig       `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// APIConfig points at the remote workouts API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	StateDir     string `yaml:"state_dir"`
	CookieName   string `yaml:"cookie_name"`
	SecureCookie bool   `yaml:"secure_cookie"`
	// LoginURL is where unauthenticated page requests are redirected.
	// Empty means answer 401.
	LoginURL string `yaml:"login_url"`
}

// DatabaseConfig enables the submission audit log. It is optional; an empty
// host disables it.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// MCPConfig configures the stdio MCP binary, which has no browser session.
type MCPConfig struct {
	AccessToken string `yaml:"access_token"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix TREINO_ and underscore-separated paths:
//
//	TREINO_SERVER_HOST, TREINO_SERVER_PORT,
//	TREINO_API_BASE_URL, TREINO_API_TIMEOUT,
//	TREINO_SESSION_STATE_DIR, TREINO_SESSION_LOGIN_URL,
//	TREINO_DB_HOST, TREINO_DB_PORT, TREINO_DB_NAME,
//	TREINO_DB_USER, TREINO_DB_PASSWORD, TREINO_DB_SSLMODE,
//	TREINO_TAILSCALE_ENABLED, TREINO_ACCESS_TOKEN
func Load(path string) (*Config, error) {
	return load(path, modeServer)
}

// LoadMCP reads config for the stdio MCP binary. It opens no listener, so
// server.port is not required, but an access token is.
func LoadMCP(path string) (*Config, error) {
	return load(path, modeMCP)
}

type mode int

const (
	modeServer mode = iota
	modeMCP
)

func load(path string, m mode) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(m); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TREINO_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TREINO_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TREINO_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TREINO_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("TREINO_SESSION_STATE_DIR"); v != "" {
		cfg.Session.StateDir = v
	}
	if v := os.Getenv("TREINO_SESSION_LOGIN_URL"); v != "" {
		cfg.Session.LoginURL = v
	}
	if v := os.Getenv("TREINO_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("TREINO_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("TREINO_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("TREINO_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("TREINO_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("TREINO_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("TREINO_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("TREINO_ACCESS_TOKEN"); v != "" {
		cfg.MCP.AccessToken = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Session.StateDir == "" {
		cfg.Session.StateDir = "state"
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "treino_session"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "treino"
	}
}

func (c *Config) validate(m mode) error {
	if m == modeServer && c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if m == modeMCP && c.MCP.AccessToken == "" {
		return fmt.Errorf("mcp.access_token is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Database.Enabled() {
		if c.Database.Port == 0 {
			return fmt.Errorf("database.port is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database.name is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
	}
	return nil
}
