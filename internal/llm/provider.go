// Package llm adapts OpenAI-compatible chat completion endpoints.
package llm

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the services need to call a chat model.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is implemented by providers that can list their models. It is
// used to check connectivity.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// OpenAIProvider adapts *openai.Client to the Client/ModelLister interfaces.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewProvider builds a provider for baseURL. An empty apiKey is allowed for
// proxies that hold the key themselves.
func NewProvider(baseURL, apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if u := strings.TrimRight(strings.TrimSpace(baseURL), "/"); u != "" {
		cfg.BaseURL = u
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) ListModels(ctx context.Context) (openai.ModelsList, error) {
	return p.Inner.ListModels(ctx)
}

// Endpoints holds the two ways a household can reach the model: through the
// shared proxy, or directly with its own key.
type Endpoints struct {
	ProxyURL  string
	DirectURL string
}

// Provider returns a provider for the selected mode.
func (e Endpoints) Provider(useProxy bool, apiKey string) *OpenAIProvider {
	if useProxy {
		return NewProvider(e.ProxyURL, "")
	}
	return NewProvider(e.DirectURL, apiKey)
}
