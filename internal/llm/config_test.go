package llm

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "huggingface without token",
			cfg:     Config{Provider: "huggingface"},
			wantErr: true,
		},
		{
			name:    "huggingface with token",
			cfg:     Config{Provider: "huggingface", HuggingFace: HuggingFaceConfig{APIToken: "hf_test"}},
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ErrConfiguration
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ErrConfiguration, got %T", err)
				}
			}
		})
	}
}

func TestConfig_MissingHFTokenMessage(t *testing.T) {
	err := Config{Provider: "huggingface"}.Validate()
	want := "Hugging Face API token is not set. Please check your environment variables."
	if err == nil || err.Error() != want {
		t.Fatalf("Validate() = %v, want %q", err, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HuggingFace.Model != "google/flan-t5-large" {
		t.Errorf("default HF model = %q", cfg.HuggingFace.Model)
	}
	if cfg.HuggingFace.BaseURL != "https://api-inference.huggingface.co/models" {
		t.Errorf("default HF base URL = %q", cfg.HuggingFace.BaseURL)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("default max attempts = %d, want 1 (no retry)", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 0 {
		t.Errorf("default timeout = %s, want none", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TUTOR_LLM_PROVIDER", "huggingface")
	t.Setenv("HF_TOKEN", "hf_fallback")
	t.Setenv("TUTOR_HF_API_TOKEN", "hf_primary")
	t.Setenv("TUTOR_HF_MODEL", "google/flan-t5-base")
	t.Setenv("TUTOR_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("TUTOR_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "huggingface" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.HuggingFace.APIToken != "hf_primary" {
		t.Errorf("token = %q, want TUTOR_HF_API_TOKEN to win", cfg.HuggingFace.APIToken)
	}
	if cfg.HuggingFace.Model != "google/flan-t5-base" {
		t.Errorf("model = %q", cfg.HuggingFace.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
}

func TestConfigFromEnv_HFTokenFallback(t *testing.T) {
	t.Setenv("TUTOR_HF_API_TOKEN", "")
	t.Setenv("HF_TOKEN", "hf_fallback")

	cfg := ConfigFromEnv()
	if cfg.HuggingFace.APIToken != "hf_fallback" {
		t.Fatalf("token = %q, want HF_TOKEN fallback", cfg.HuggingFace.APIToken)
	}
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Setenv("TUTOR_LLM_MAX_ATTEMPTS", "zero")
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Fatal("expected error for non-numeric max attempts")
	}

	t.Setenv("TUTOR_LLM_MAX_ATTEMPTS", "")
	t.Setenv("TUTOR_LLM_TIMEOUT", "soon")
	cfg = DefaultConfig()
	if err := cfg.ApplyEnv(); err == nil {
		t.Fatal("expected error for malformed timeout")
	}
}

func clearDiscoveryEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	t.Run("explicit provider kept", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := Config{Provider: "anthropic"}.Resolve()
		if cfg.Provider != "anthropic" {
			t.Fatalf("provider = %q", cfg.Provider)
		}
	})

	t.Run("hf token wins", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := DefaultConfig()
		cfg.HuggingFace.APIToken = "hf_test"
		if got := cfg.Resolve().Provider; got != "huggingface" {
			t.Fatalf("provider = %q, want huggingface", got)
		}
	})

	t.Run("discovered provider keeps retry settings", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := DefaultConfig()
		cfg.Retry.MaxAttempts = 4
		got := cfg.Resolve()
		if got.Provider != "openai" || got.OpenAI.APIKey != "sk-test" {
			t.Fatalf("resolved = %q / %q", got.Provider, got.OpenAI.APIKey)
		}
		if got.Retry.MaxAttempts != 4 {
			t.Fatalf("max attempts = %d, want 4", got.Retry.MaxAttempts)
		}
	})

	t.Run("nothing found falls back to huggingface", func(t *testing.T) {
		clearDiscoveryEnv(t)
		got := DefaultConfig().Resolve()
		if got.Provider != "huggingface" {
			t.Fatalf("provider = %q", got.Provider)
		}
		if got.Validate() == nil {
			t.Fatal("expected missing token to fail validation")
		}
	})
}
