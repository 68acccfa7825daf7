package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.ServerPort == "" {
		t.Error("ServerPort vazio")
	}
	if cfg.Search.ExternalPolicy != PolicyFallback && cfg.Search.ExternalPolicy != PolicyParallel {
		t.Errorf("ExternalPolicy = %q", cfg.Search.ExternalPolicy)
	}
	if cfg.Search.ChatCap <= 0 || cfg.Search.FormCap <= 0 {
		t.Errorf("caps devem ser positivos: chat=%d form=%d", cfg.Search.ChatCap, cfg.Search.FormCap)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOCAL_BACKEND", "typesense")
	t.Setenv("SEARCH_EXTERNAL_POLICY", "parallel")
	t.Setenv("SEARCH_CHAT_CAP", "3")
	t.Setenv("VIACEP_TIMEOUT", "2s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DEFAULT_CITY", "Barretos")

	cfg := LoadConfig()

	if cfg.LocalBackend != BackendTypesense {
		t.Errorf("LocalBackend = %q, want typesense", cfg.LocalBackend)
	}
	if cfg.Search.ExternalPolicy != PolicyParallel {
		t.Errorf("ExternalPolicy = %q, want parallel", cfg.Search.ExternalPolicy)
	}
	if cfg.Search.ChatCap != 3 {
		t.Errorf("ChatCap = %d, want 3", cfg.Search.ChatCap)
	}
	if cfg.ViaCEP.Timeout != 2*time.Second {
		t.Errorf("ViaCEP.Timeout = %v, want 2s", cfg.ViaCEP.Timeout)
	}
	if !cfg.UseRedis() {
		t.Error("UseRedis() = false, want true")
	}
	if cfg.DefaultCity != "Barretos" {
		t.Errorf("DefaultCity = %q, want Barretos", cfg.DefaultCity)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("Warnings = %v, want nenhum", cfg.Warnings)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Setenv("LOCAL_BACKEND", "mongo")
	t.Setenv("SEARCH_EXTERNAL_POLICY", "sempre")
	t.Setenv("SEARCH_FORM_CAP", "0")
	t.Setenv("HISTORY_MAX", "abc")

	cfg := LoadConfig()

	if cfg.LocalBackend != BackendPostgres {
		t.Errorf("LocalBackend = %q, want postgres", cfg.LocalBackend)
	}
	if cfg.Search.ExternalPolicy != PolicyFallback {
		t.Errorf("ExternalPolicy = %q, want fallback", cfg.Search.ExternalPolicy)
	}
	if cfg.Search.FormCap != 20 {
		t.Errorf("FormCap = %d, want 20", cfg.Search.FormCap)
	}
	if cfg.HistoryMax != 10 {
		t.Errorf("HistoryMax = %d, want 10", cfg.HistoryMax)
	}
	if len(cfg.Warnings) != 3 {
		t.Errorf("len(Warnings) = %d, want 3: %v", len(cfg.Warnings), cfg.Warnings)
	}
}
