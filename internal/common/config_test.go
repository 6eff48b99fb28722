package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "s")

	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(cfg.LLM.Models) != 3 || cfg.LLM.Models[0] != "gemini-2.0-flash-lite" {
		t.Errorf("default models = %v", cfg.LLM.Models)
	}
	if cfg.LLM.TranscribeTimeout >= cfg.LLM.AnalyzeTimeout {
		t.Error("transcribe timeout must be shorter than analyze timeout")
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.HTTPAddr)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("GEMINI_MODELS", " flash , ,pro ")
	t.Setenv("LLM_ANALYZE_TIMEOUT", "90s")

	cfg := LoadConfig()
	if len(cfg.LLM.Models) != 2 || cfg.LLM.Models[0] != "flash" || cfg.LLM.Models[1] != "pro" {
		t.Errorf("models = %v, want [flash pro]", cfg.LLM.Models)
	}
	if cfg.LLM.AnalyzeTimeout != 90*time.Second {
		t.Errorf("analyze timeout = %v", cfg.LLM.AnalyzeTimeout)
	}
}

func TestValidateMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "s")

	cfg := LoadConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without GEMINI_API_KEY")
	}
}
