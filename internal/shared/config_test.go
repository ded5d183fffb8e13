package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Graph.Host == "" {
		t.Error("expected default graph host")
	}
	if config.Graph.Port == 0 {
		t.Error("expected default graph port")
	}
	if config.Graph.Name == "" {
		t.Error("expected default graph name")
	}
	if config.Scraper.RenderTimeoutSecs != 7 {
		t.Errorf("expected render timeout 7, got %d", config.Scraper.RenderTimeoutSecs)
	}
	if config.Scraper.ScrollCount != 10 {
		t.Errorf("expected scroll count 10, got %d", config.Scraper.ScrollCount)
	}
}

func TestGraphConfigAddr(t *testing.T) {
	g := GraphConfig{Host: "localhost", Port: 6379}
	if got := g.Addr(); got != "localhost:6379" {
		t.Errorf("expected localhost:6379, got %s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
[graph]
host = "graph.internal"
port = 6380
name = "test_graph"

[youtube]
client_secrets = "secrets.json"
token = "tok.json"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Graph.Host != "graph.internal" {
			t.Errorf("expected graph.internal, got %s", config.Graph.Host)
		}
		if config.Graph.Port != 6380 {
			t.Errorf("expected port 6380, got %d", config.Graph.Port)
		}
		if config.YouTube.ClientSecretsPath != "secrets.json" {
			t.Errorf("expected secrets.json, got %s", config.YouTube.ClientSecretsPath)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FALKORDB_HOST", "envhost")
	t.Setenv("FALKORDB_PORT", "7000")

	config := DefaultConfig()

	if config.Graph.Host != "envhost" {
		t.Errorf("expected env host override, got %s", config.Graph.Host)
	}
	if config.Graph.Port != 7000 {
		t.Errorf("expected env port override, got %d", config.Graph.Port)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Error("config file was not created")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}
