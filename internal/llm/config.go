package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderHuggingFace = "huggingface"
	ProviderAnthropic   = "anthropic"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini"
	ProviderOpenRouter  = "openrouter"
	ProviderMock        = "mock"
)

const hfTokenMissing = "Hugging Face API token is not set. Please check your environment variables."

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "huggingface", "anthropic", "openai", "gemini", "openrouter", "mock".
	// Empty means auto: Hugging Face when its token is present, otherwise the
	// first provider found by DiscoverConfig.
	Provider string `yaml:"provider"`

	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	Anthropic   AnthropicConfig   `yaml:"anthropic"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenRouter  OpenRouterConfig  `yaml:"openrouter"`
	Retry       RetryConfig       `yaml:"retry"`

	// Timeout bounds a single request including retries. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

// HuggingFaceConfig holds Hugging Face Inference API configuration.
type HuggingFaceConfig struct {
	APIToken string `yaml:"api_token"`
	Model    string `yaml:"model"`    // Default: "google/flan-t5-large"
	BaseURL  string `yaml:"base_url"` // Default: "https://api-inference.huggingface.co/models"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "google/gemini-2.0-flash-exp"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults. Requests are sent
// once, without retry or timeout.
func DefaultConfig() Config {
	return Config{
		HuggingFace: HuggingFaceConfig{
			Model:   defaultHFModel,
			BaseURL: defaultHFBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Malformed numeric values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	_ = cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays TUTOR_* environment variables onto c. Variables that
// are unset leave the existing value alone.
func (c *Config) ApplyEnv() error {
	setString(&c.Provider, "TUTOR_LLM_PROVIDER")

	setString(&c.HuggingFace.APIToken, "HF_TOKEN")
	setString(&c.HuggingFace.APIToken, "TUTOR_HF_API_TOKEN")
	setString(&c.HuggingFace.Model, "TUTOR_HF_MODEL")
	setString(&c.HuggingFace.BaseURL, "TUTOR_HF_BASE_URL")

	setString(&c.Anthropic.APIKey, "TUTOR_ANTHROPIC_API_KEY")
	setString(&c.Anthropic.Model, "TUTOR_ANTHROPIC_MODEL")

	setString(&c.OpenAI.APIKey, "TUTOR_OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "TUTOR_OPENAI_MODEL")
	setString(&c.OpenAI.BaseURL, "TUTOR_OPENAI_BASE_URL")

	setString(&c.Gemini.APIKey, "TUTOR_GEMINI_API_KEY")
	setString(&c.Gemini.Model, "TUTOR_GEMINI_MODEL")

	setString(&c.OpenRouter.APIKey, "TUTOR_OPENROUTER_API_KEY")
	setString(&c.OpenRouter.Model, "TUTOR_OPENROUTER_MODEL")

	if v := os.Getenv("TUTOR_LLM_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("TUTOR_LLM_MAX_ATTEMPTS: invalid value %q", v)
		}
		c.Retry.MaxAttempts = n
	}
	if v := os.Getenv("TUTOR_LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TUTOR_LLM_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Resolve settles an empty Provider. Hugging Face wins when its token is
// set; otherwise a discovered provider is used, keeping c's retry and
// timeout settings. With nothing found, Hugging Face is selected so that
// Validate reports its missing token.
func (c Config) Resolve() Config {
	if c.Provider != "" {
		return c
	}
	if c.HuggingFace.APIToken != "" {
		c.Provider = ProviderHuggingFace
		return c
	}
	if d, ok := DiscoverConfig(); ok {
		d.Retry = c.Retry
		d.Timeout = c.Timeout
		d.HuggingFace = c.HuggingFace
		return d
	}
	c.Provider = ProviderHuggingFace
	return c
}

// Validate checks that the selected provider has its required credential
// set. Failures are *ErrConfiguration.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderHuggingFace, "":
		if c.HuggingFace.APIToken == "" {
			return &ErrConfiguration{Key: "TUTOR_HF_API_TOKEN", Msg: hfTokenMissing}
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Key: "TUTOR_ANTHROPIC_API_KEY"}
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Key: "TUTOR_OPENAI_API_KEY"}
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Key: "TUTOR_GEMINI_API_KEY"}
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return &ErrConfiguration{Key: "TUTOR_OPENROUTER_API_KEY"}
		}
	case ProviderMock:
		// No credential needed.
	default:
		return &ErrConfiguration{Key: "TUTOR_LLM_PROVIDER", Msg: fmt.Sprintf("unknown LLM provider: %q", c.Provider)}
	}
	return nil
}
