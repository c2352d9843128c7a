package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"BEVERAGE_BUDDY_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BEVERAGE_BUDDY_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.env")
	if err := os.WriteFile(path, []byte("BEVERAGE_BUDDY_DOTENV_TEST=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BEVERAGE_BUDDY_DOTENV_TEST", "")
	os.Unsetenv("BEVERAGE_BUDDY_DOTENV_TEST")

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if loaded != path {
		t.Fatalf("loaded = %q, want %q", loaded, path)
	}
	if got := os.Getenv("BEVERAGE_BUDDY_DOTENV_TEST"); got != "from-file" {
		t.Fatalf("env value = %q, want %q", got, "from-file")
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BEVERAGE_BUDDY_DOTENV_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BEVERAGE_BUDDY_DOTENV_KEEP", "from-env")

	if _, err := LoadDotEnv(path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("BEVERAGE_BUDDY_DOTENV_KEEP"); got != "from-env" {
		t.Fatalf("env value = %q, want %q", got, "from-env")
	}
}

func TestLoadDotEnvNoFiles(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"), "")
	if err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if loaded != "" {
		t.Fatalf("loaded = %q, want empty", loaded)
	}
}
