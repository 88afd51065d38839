package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("KR_TEST_SERVICE_KEY", "secret-key")

	path := writeConfig(t, `
dataset:
  dir: /srv/holidays
generator:
  service_key: ${KR_TEST_SERVICE_KEY}
  retries: 5
  gzip: true
  years: [2024, 2025]
server:
  addr: 127.0.0.1:9000
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset.Dir != "/srv/holidays" {
		t.Errorf("Dataset.Dir = %q", cfg.Dataset.Dir)
	}
	if cfg.Generator.ServiceKey != "secret-key" {
		t.Errorf("ServiceKey = %q, want expanded env var", cfg.Generator.ServiceKey)
	}
	if cfg.Generator.Retries != 5 || !cfg.Generator.Gzip {
		t.Errorf("Generator = %+v", cfg.Generator)
	}
	if !reflect.DeepEqual(cfg.Generator.GetYears(), []int{2024, 2025}) {
		t.Errorf("GetYears() = %v", cfg.Generator.GetYears())
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}

	// defaults fill unset keys
	if cfg.Generator.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.Generator.APIURL)
	}
	if cfg.Generator.Rows != 100 {
		t.Errorf("Rows = %d, want 100", cfg.Generator.Rows)
	}
	if cfg.Generator.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout() = %v", cfg.Generator.GetTimeout())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KR_HOLIDAYS_GENERATOR_SERVICE_KEY", "env-key")
	t.Setenv("KR_HOLIDAYS_DATASET_DIR", "/var/lib/kr-holidays")
	t.Setenv("KR_HOLIDAYS_GENERATOR_ROWS", "50")

	path := writeConfig(t, `
generator:
  retries: 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generator.ServiceKey != "env-key" {
		t.Errorf("ServiceKey = %q, want value from KR_HOLIDAYS_GENERATOR_SERVICE_KEY", cfg.Generator.ServiceKey)
	}
	if cfg.Dataset.Dir != "/var/lib/kr-holidays" {
		t.Errorf("Dataset.Dir = %q, want value from KR_HOLIDAYS_DATASET_DIR", cfg.Dataset.Dir)
	}
	if cfg.Generator.Rows != 50 {
		t.Errorf("Rows = %d, want 50 from env", cfg.Generator.Rows)
	}
	if cfg.Generator.Retries != 2 {
		t.Errorf("Retries = %d, want 2 from file", cfg.Generator.Retries)
	}
}

func TestLoad_ZeroRetries(t *testing.T) {
	path := writeConfig(t, "generator:\n  retries: 0\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() with retries 0 expected error, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with explicit missing file should fail")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without config file error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if len(cfg.Generator.GetYears()) != 31 {
		t.Errorf("GetYears() has %d years, want 31", len(cfg.Generator.GetYears()))
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Generator: GeneratorConfig{Rows: 100, Timeout: "30s", Retries: 3},
			Server:    ServerConfig{Addr: ":8080"},
			Log:       LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero rows", func(c *Config) { c.Generator.Rows = 0 }, true},
		{"negative retries", func(c *Config) { c.Generator.Retries = -1 }, true},
		{"zero retries", func(c *Config) { c.Generator.Retries = 0 }, true},
		{"single attempt", func(c *Config) { c.Generator.Retries = 1 }, false},
		{"bad timeout", func(c *Config) { c.Generator.Timeout = "soon" }, true},
		{"bad year", func(c *Config) { c.Generator.Years = []int{2024, 0} }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"empty level", func(c *Config) { c.Log.Level = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurationGetters(t *testing.T) {
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"timeout unset", (&GeneratorConfig{}).GetTimeout(), 30 * time.Second},
		{"timeout invalid", (&GeneratorConfig{Timeout: "x"}).GetTimeout(), 30 * time.Second},
		{"timeout set", (&GeneratorConfig{Timeout: "5s"}).GetTimeout(), 5 * time.Second},
		{"read timeout unset", (&ServerConfig{}).GetReadTimeout(), 10 * time.Second},
		{"read timeout set", (&ServerConfig{ReadTimeout: "1m"}).GetReadTimeout(), time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}
