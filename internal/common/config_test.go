package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docmd.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Extract.MinTextChars != 20 {
		t.Errorf("MinTextChars = %d, want 20", cfg.Extract.MinTextChars)
	}
	if cfg.LLM.Timeout != 2*time.Minute {
		t.Errorf("LLM.Timeout = %v, want 2m", cfg.LLM.Timeout)
	}
}

func TestLoadConfigYAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  addr: \":9090\"\nllm:\n  model_path: /models/qwen.gguf\n")
	t.Setenv("DOCMD_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.LLM.ModelPath != "/models/qwen.gguf" {
		t.Errorf("ModelPath = %q, want %q", cfg.LLM.ModelPath, "/models/qwen.gguf")
	}
	// Values the file does not mention keep their defaults.
	if cfg.Database.Path != "docmd.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "docmd.db")
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	path := writeConfigFile(t, "llm:\n  model_path: /from/yaml.gguf\nextract:\n  dpi: 150\n")
	t.Setenv("DOCMD_CONFIG", path)
	t.Setenv("LLM_MODEL_PATH", "/from/env.gguf")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LLM.ModelPath != "/from/env.gguf" {
		t.Errorf("ModelPath = %q, want %q", cfg.LLM.ModelPath, "/from/env.gguf")
	}
	if cfg.Extract.DPI != 150 {
		t.Errorf("DPI = %d, want 150 from file", cfg.Extract.DPI)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv("DOCMD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
