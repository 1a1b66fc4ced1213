package llm

import (
	"fmt"

	"github.com/calebmh/mnemo/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// NewClient creates an LLM client based on the provider name.
// Returns an error if the provider is unknown or the API key is empty
// (except for mock).
func NewClient(provider, apiURL, apiKey, model string) (domain.LLMClient, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiURL, apiKey, model), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: openai, mock)", provider)
	}
}
