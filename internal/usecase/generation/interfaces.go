package generation

import "context"

// LLMConnector generates text for one system+user exchange.
type LLMConnector interface {
	Generate(ctx context.Context, model, prompt, systemPrompt string) (string, error)
}
