package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"noir-api-mapper/internal/config"
	"noir-api-mapper/internal/types"

	openai "github.com/sashabaranov/go-openai"
)

// Synthesizer is the contract the pipeline calls once per batch. The call
// is one-shot: no retry lives behind this interface, and retry policy, if
// any, belongs to whoever wraps it.
type Synthesizer interface {
	Synthesize(ctx context.Context, batch types.RequestBatch) (*types.ApiCollection, error)
}

const groqBaseURL = "https://api.groq.com/openai/v1"

const systemPrompt = "You are an API architect. Merge the discovered endpoints with the provided " +
	"route files, infer missing endpoints, and respond ONLY with a valid JSON object " +
	"following this schema:\n" + CollectionSchema

// Client synthesizes ApiCollections through an OpenAI-compatible
// chat-completion endpoint.
type Client struct {
	cfg    config.SynthesisConfig
	apiKey string
	api    *openai.Client
}

// NewClient creates a synthesis client for the configured provider. Groq is
// reached through its OpenAI-compatible endpoint, so both providers share
// the same transport and differ only in base URL and credentials.
func NewClient(cfg config.SynthesisConfig) (*Client, error) {
	switch cfg.Provider {
	case "groq":
		if cfg.BaseURL == "" {
			cfg.BaseURL = groqBaseURL
		}
	case "openai":
	default:
		return nil, fmt.Errorf("unsupported synthesis provider: %s", cfg.Provider)
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		cfg:    cfg,
		apiKey: apiKey,
		api:    openai.NewClientWithConfig(clientConfig),
	}, nil
}

// Synthesize submits one batch and returns the strictly validated
// collection. Every failure carries a distinct reason; an absent credential
// is reported here rather than at construction so the caller sees it as a
// synthesis failure like any other.
func (c *Client) Synthesize(ctx context.Context, batch types.RequestBatch) (*types.ApiCollection, error) {
	if c.apiKey == "" {
		return nil, newError(ReasonMissingCredential, -1, "%s is not set", c.cfg.APIKeyEnv)
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, &Error{Reason: ReasonUpstreamFailure, Batch: -1, Detail: "failed to serialize batch", Err: err}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, &Error{Reason: ReasonUpstreamFailure, Batch: -1, Detail: "chat completion failed", Err: err}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, newError(ReasonUpstreamFailure, -1, "model returned no content")
	}

	content := []byte(resp.Choices[0].Message.Content)
	if !json.Valid(content) {
		return nil, newError(ReasonInvalidJSON, -1, "model returned invalid JSON")
	}

	collection, err := DecodeCollection(content)
	if err != nil {
		return nil, &Error{Reason: ReasonSchemaViolation, Batch: -1, Detail: err.Error()}
	}
	if collection.BaseURL != batch.BaseURL {
		return nil, newError(ReasonBaseURLMismatch, -1,
			"response baseUrl %q does not match request baseUrl %q", collection.BaseURL, batch.BaseURL)
	}
	return collection, nil
}
