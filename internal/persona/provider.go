// Package persona turns collected user content into a personality
// profile via a Groq-hosted chat model.
package persona

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/qepting91/persona-lens/internal/domain"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

// Provider is the interface for chat-completion backends.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// NewProvider is the factory for creating providers. It is a package-level
// variable so tests can replace it with a mock without modifying the call
// site. Tests must restore the original value; use t.Cleanup to do so safely.
var NewProvider func(apiKey string, model domain.Model) (Provider, error) = newGroqProvider

// groqProvider implements Provider against Groq via the OpenAI SDK.
type groqProvider struct {
	client openai.Client
	model  domain.Model
}

func newGroqProvider(apiKey string, model domain.Model) (Provider, error) {
	if apiKey == "" {
		return nil, domain.E(domain.KindConfig, "persona.NewProvider",
			errors.New("GROQ_API_KEY is not set"))
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(groqBaseURL),
	)
	return &groqProvider{client: client, model: model}, nil
}

func (p *groqProvider) Complete(
	ctx context.Context,
	systemPrompt, userPrompt string,
	maxTokens int,
	temperature float64,
) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", classifyProviderError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq: response contained no choices")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("groq: response contained no content")
	}
	return content, nil
}

// classifyProviderError maps SDK failures onto domain kinds by status
// code, with a message-text fallback for transport errors the SDK does
// not type. Anything else stays KindUnknown.
func classifyProviderError(err error) error {
	const op = "persona.Complete"

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.E(domain.KindAuth, op, err)
		case http.StatusTooManyRequests:
			return domain.E(domain.KindRateLimit, op, err)
		}
		return domain.E(domain.KindUnknown, op, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api_key"), strings.Contains(msg, "api key"):
		return domain.E(domain.KindAuth, op, err)
	case strings.Contains(msg, "rate_limit"), strings.Contains(msg, "rate limit"):
		return domain.E(domain.KindRateLimit, op, err)
	}
	return domain.E(domain.KindUnknown, op, err)
}
