package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MONGU38/kkokko-project/internal/server/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  http:
    addr: "0.0.0.0:9999"
storage:
  data_dir: "/tmp/kkokko-test"
  save_interval: 30s
log:
  level: debug
`)

	cfg := config.Default()
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.HTTP.Addr != "0.0.0.0:9999" {
		t.Errorf("addr = %q", cfg.Server.HTTP.Addr)
	}
	if cfg.Storage.DataDir != "/tmp/kkokko-test" {
		t.Errorf("data_dir = %q", cfg.Storage.DataDir)
	}
	if cfg.Storage.SaveInterval != 30*time.Second {
		t.Errorf("save_interval = %v", cfg.Storage.SaveInterval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded = false after Load")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: info
`)
	t.Setenv("KKOKKO_LOG_LEVEL", "error")

	cfg := config.Default()
	if err := NewLoader(WithConfigFile(path)).Load(cfg); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want env override", cfg.Log.Level)
	}
}

func TestLoadWithoutFileKeepsDefaults(t *testing.T) {
	cfg := config.Default()
	if err := NewLoader().Load(cfg); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.HTTP.Addr != config.DefaultHTTPAddr {
		t.Errorf("addr = %q", cfg.Server.HTTP.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg := config.Default()
	err := NewLoader(WithConfigFile("/nonexistent/config.yaml")).Load(cfg)
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadMap(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"log.level": "warn"}); err != nil {
		t.Fatalf("LoadMap error: %v", err)
	}
	if got := l.GetString("log.level"); got != "warn" {
		t.Errorf("log.level = %q", got)
	}
}
