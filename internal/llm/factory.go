package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/tutor/internal/store"
)

// NewProvider creates a Provider from configuration. The configuration is
// validated first, so a missing credential surfaces as *ErrConfiguration
// before any client is built. The result is wrapped with timeout, retry
// and logging middleware. eventRepo may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderHuggingFace, "":
		base, err = NewHuggingFaceProvider(cfg.HuggingFace)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewDemoProvider()
	default:
		return nil, &ErrConfiguration{Key: "TUTOR_LLM_PROVIDER", Msg: fmt.Sprintf("unknown LLM provider: %q", cfg.Provider)}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → logging → base
	p := base
	if eventRepo != nil {
		p = WithLogging(p, providerName(cfg.Provider), eventRepo)
	}
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

func providerName(p string) string {
	if p == "" {
		return ProviderHuggingFace
	}
	return p
}
