package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API         APIConfig         `toml:"api"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Display     DisplayConfig     `toml:"display"`
}

// APIConfig points at the tab backend.
type APIConfig struct {
	BaseURL        string  `toml:"base_url"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a [time.Duration].
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CredentialsConfig contains identity provider credentials.
type CredentialsConfig struct {
	Google GoogleConfig `toml:"google"`
}

// GoogleConfig contains Google OAuth client credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DisplayConfig contains list and tab view settings.
type DisplayConfig struct {
	PageSize    int    `toml:"page_size"`
	ScrollSpeed int    `toml:"scroll_speed"`
	LogFile     string `toml:"log_file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}
	if c.Display.PageSize <= 0 {
		return fmt.Errorf("%w: display.page_size must be positive", ErrInvalidConfig)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range", ErrInvalidConfig)
	}
	return nil
}

// HasGoogleCredentials reports whether a usable Google client is configured.
func (c *Config) HasGoogleCredentials() bool {
	g := c.Credentials.Google
	return g.ClientID != "" && g.ClientSecret != "" && g.ClientID != "your_google_client_id"
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
