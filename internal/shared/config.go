package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Graph   GraphConfig   `toml:"graph"`
	YouTube YouTubeConfig `toml:"youtube"`
	Scraper ScraperConfig `toml:"scraper"`
}

// GraphConfig contains FalkorDB connection settings.
type GraphConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	Name string `toml:"name"`
}

// Addr returns the host:port address for the RESP connection.
func (g GraphConfig) Addr() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// YouTubeConfig contains YouTube Data API credential paths and client settings.
type YouTubeConfig struct {
	ClientSecretsPath string `toml:"client_secrets"`
	TokenPath         string `toml:"token"`
	CallbackAddr      string `toml:"callback_addr"`
	RequestIntervalMS int    `toml:"request_interval_ms"`
}

// ScraperConfig contains browser-session tuning for the scrape stage.
type ScraperConfig struct {
	RenderTimeoutSecs int    `toml:"render_timeout_secs"`
	ScrollCount       int    `toml:"scroll_count"`
	ScrollDelayMS     int    `toml:"scroll_delay_ms"`
	CloseTimeoutSecs  int    `toml:"close_timeout_secs"`
	OEmbedURL         string `toml:"oembed_url"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.ApplyEnv()
	return &config
}

// ApplyEnv overlays environment variables onto the config.
//
// A .env file in the working directory is loaded first if present; process
// environment wins over the file. Recognized variables: FALKORDB_HOST,
// FALKORDB_PORT, CLIENT_SECRETS_PATH, TOKEN_PATH.
func (c *Config) ApplyEnv() {
	godotenv.Load()

	if host := os.Getenv("FALKORDB_HOST"); host != "" {
		c.Graph.Host = host
	}
	if port := os.Getenv("FALKORDB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Graph.Port = p
		}
	}
	if secrets := os.Getenv("CLIENT_SECRETS_PATH"); secrets != "" {
		c.YouTube.ClientSecretsPath = secrets
	}
	if token := os.Getenv("TOKEN_PATH"); token != "" {
		c.YouTube.TokenPath = token
	}
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
