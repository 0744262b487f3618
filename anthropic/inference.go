// Package anthropic implements carpe.InferenceService using Claude.
package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/destiner/carpe"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

var _ carpe.InferenceService = (*Inference)(nil)

// Inference implements carpe.InferenceService using the Anthropic Messages API.
type Inference struct {
	client  anthropic.Client
	apiKey  string
	model   string
	options []option.RequestOption
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

// WithRequestOptions passes extra options to the underlying client.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(i *Inference) {
		i.options = append(i.options, opts...)
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
	i.client = anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, i.options...)...)
	return i
}

// Capability reports whether an API key is configured. The API has no
// cheap readiness probe, so no request is made.
func (i *Inference) Capability(context.Context) carpe.CapabilityState {
	if i.apiKey == "" {
		return carpe.Unavailable(carpe.ReasonNotEnabled)
	}
	return carpe.Available()
}

// Generate issues one Messages call.
func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(i.model),
		MaxTokens: int64(req.MaxOutputTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserText)),
		},
	}
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemInstruction}}
	}

	message, err := i.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(message.Content) == 0 {
		return "", carpe.Errorf(carpe.EINTERNAL, "claude returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", carpe.Errorf(carpe.EINTERNAL, "claude returned unexpected content type %q", message.Content[0].Type)
	}
	return textBlock.Text, nil
}
