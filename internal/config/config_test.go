package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DATABASE_URL", "PORT", "LOG_LEVEL", "SOLVER_URL", "REDIS_ADDR", "CACHE_TTL", "LEMMATIZE", FileEnv} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logicgraph.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != DefaultPort || cfg.SolverURL != DefaultSolverURL || cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DatabaseURL != "" || cfg.RedisAddr != "" || cfg.Lemmatize {
		t.Errorf("optional backends should be off by default: %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %s", cfg.Addr())
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(FileEnv, writeFile(t, `
port: "9090"
solver_url: http://solver:5000
redis_addr: redis:6379
cache_ttl: 90s
lemmatize: true
`))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.SolverURL != "http://solver:5000" || cfg.RedisAddr != "redis:6379" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %s, want 90s", cfg.CacheTTL)
	}
	if !cfg.Lemmatize {
		t.Error("Lemmatize should be true")
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("unset file keys should keep defaults, LogLevel = %q", cfg.LogLevel)
	}
}

// TestLoadEnvWins verifies environment variables override the file
func TestLoadEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(FileEnv, writeFile(t, "port: \"9090\"\ncache_ttl: 1m\n"))
	t.Setenv("PORT", "7070")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("LEMMATIZE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %s, want 7070", cfg.Port)
	}
	if cfg.CacheTTL != 5*time.Second {
		t.Errorf("CacheTTL = %s, want 5s", cfg.CacheTTL)
	}
	if !cfg.Lemmatize {
		t.Error("Lemmatize should be true")
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		file string
	}{
		{"Bad port", map[string]string{"PORT": "http"}, ""},
		{"Port out of range", map[string]string{"PORT": "70000"}, ""},
		{"Bad level", map[string]string{"LOG_LEVEL": "loud"}, ""},
		{"Bad TTL", map[string]string{"CACHE_TTL": "soon"}, ""},
		{"Bad lemmatize", map[string]string{"LEMMATIZE": "maybe"}, ""},
		{"Empty solver", map[string]string{"SOLVER_URL": ""}, ""},
		{"Bad file TTL", nil, "cache_ttl: later\n"},
		{"Bad YAML", nil, "port: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if tc.file != "" {
				t.Setenv(FileEnv, writeFile(t, tc.file))
			}
			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(FileEnv, filepath.Join(t.TempDir(), "absent.yaml"))
		if _, err := Load(); err == nil {
			t.Error("Load() should fail for a missing config file")
		}
	})
}
