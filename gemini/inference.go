// Package gemini implements carpe.InferenceService using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/destiner/carpe"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const defaultTemperature = float32(0.4)

var _ carpe.InferenceService = (*Inference)(nil)

// Inference implements carpe.InferenceService using Google Gemini.
type Inference struct {
	client      *genai.Client
	model       string
	temperature float32
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

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(i *Inference) {
		i.temperature = t
	}
}

// NewInference creates a new Inference. A nil client reports the
// capability as not enabled.
func NewInference(client *genai.Client, opts ...Option) *Inference {
	i := &Inference{
		client:      client,
		model:       DefaultModel,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Capability looks up the configured model and maps the outcome to a
// capability state.
func (i *Inference) Capability(ctx context.Context) carpe.CapabilityState {
	if i.client == nil {
		return carpe.Unavailable(carpe.ReasonNotEnabled)
	}
	if _, err := i.client.Models.Get(ctx, i.model, nil); err != nil {
		return capabilityFromError(err)
	}
	return carpe.Available()
}

// Generate issues one GenerateContent call.
func (i *Inference) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	if i.client == nil {
		return "", carpe.Errorf(carpe.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := i.client.Models.GenerateContent(ctx, i.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: req.UserText}},
		}},
		BuildConfig(req, i.temperature),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", carpe.Errorf(carpe.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a request.
func BuildConfig(req carpe.GenerateRequest, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxOutputTokens)
	}
	return config
}

func capabilityFromError(err error) carpe.CapabilityState {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
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
