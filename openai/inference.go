// Package openai implements carpe.InferenceService using the OpenAI chat API.
package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/destiner/carpe"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the OpenAI model used when none is configured.
const DefaultModel = openai.GPT4oMini

var _ carpe.InferenceService = (*Inference)(nil)

// Inference implements carpe.InferenceService using OpenAI chat completions.
type Inference struct {
	client  *openai.Client
	apiKey  string
	model   string
	baseURL string
}

// Option configures an Inference.
type Option func(*Inference)

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(i *Inference) {
		if model != "" {
			i.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI compatible endpoint.
func WithBaseURL(url string) Option {
	return func(i *Inference) {
		i.baseURL = url
	}
}

// NewInference creates a new Inference. An empty apiKey reports the
// capability as not enabled.
func NewInference(apiKey string, opts ...Option) *Inference {
	i := &Inference{
		apiKey: apiKey,
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(i)
	}

	config := openai.DefaultConfig(apiKey)
	if i.baseURL != "" {
		config.BaseURL = i.baseURL
	}
	i.client = openai.NewClientWithConfig(config)
	return i
}

// Capability looks up the configured model and maps the outcome to a
// capability state.
func (i *Inference) Capability(ctx context.Context) carpe.CapabilityState {
	if i.apiKey == "" {
		return carpe.Unavailable(carpe.ReasonNotEnabled)
	}
	if _, err := i.client.GetModel(ctx, i.model); err != nil {
		return capabilityFromError(err)
	}
	return carpe.Available()
}

// Generate issues one chat completion call.
func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserText,
	})

	resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     i.model,
		Messages:  messages,
		MaxTokens: req.MaxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", carpe.Errorf(carpe.EINTERNAL, "openai returned empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

func capabilityFromError(err error) carpe.CapabilityState {
	code := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return carpe.Unavailable(carpe.ReasonNotEnabled)
	case http.StatusNotFound, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return carpe.Unavailable(carpe.ReasonModelNotReady)
	default:
		return carpe.UnavailableOther(err.Error())
	}
}
