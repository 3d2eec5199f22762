package llm

import (
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LUYENDE_LLM_PROVIDER",
		"LUYENDE_ANTHROPIC_API_KEY", "LUYENDE_OPENAI_API_KEY", "LUYENDE_GEMINI_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestConfigFromEnv_ExplicitProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("LUYENDE_LLM_PROVIDER", "openai")
	t.Setenv("LUYENDE_OPENAI_API_KEY", "sk-test")
	t.Setenv("LUYENDE_OPENAI_MODEL", "gpt-custom")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-custom" {
		t.Errorf("Model = %q, want gpt-custom", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfig_PriorityOrder(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	// Gemini is absent, so OpenAI wins over Anthropic.
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a discovered config")
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}

	t.Setenv("GEMINI_API_KEY", "sk-gemini")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Provider)
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Error("expected no discovered config with no keys set")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"gemini with key", func(c *Config) { c.Gemini.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) {}, true},
		{"anthropic without key", func(c *Config) { c.Provider = "anthropic" }, true},
		{"mock needs no key", func(c *Config) { c.Provider = "mock" }, false},
		{"unknown provider", func(c *Config) { c.Provider = "llama-at-home" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
