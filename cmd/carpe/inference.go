package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/anthropic"
	"github.com/destiner/carpe/gemini"
	"github.com/destiner/carpe/gobreaker"
	"github.com/destiner/carpe/openai"
	carpeprometheus "github.com/destiner/carpe/prometheus"
	"github.com/destiner/carpe/rate"
	carpeslog "github.com/destiner/carpe/slog"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/genai"
)

// API key environment variables per provider.
const (
	geminiKeyEnv    = "GEMINI_API_KEY"
	anthropicKeyEnv = "ANTHROPIC_API_KEY"
	openaiKeyEnv    = "OPENAI_API_KEY"
)

// newProvider builds the inference adapter for provider. A missing API key
// is not an error: the adapter then reports itself as not enabled.
func newProvider(ctx context.Context, provider, model string, getenv func(string) string) (carpe.InferenceService, error) {
	switch provider {
	case "anthropic":
		var opts []anthropic.Option
		if model != "" {
			opts = append(opts, anthropic.WithModel(model))
		}
		return anthropic.NewInference(getenv(anthropicKeyEnv), opts...), nil

	case "openai":
		var opts []openai.Option
		if model != "" {
			opts = append(opts, openai.WithModel(model))
		}
		return openai.NewInference(getenv(openaiKeyEnv), opts...), nil

	case "gemini", "":
		var opts []gemini.Option
		if model != "" {
			opts = append(opts, gemini.WithModel(model))
		}

		apiKey := getenv(geminiKeyEnv)
		if apiKey == "" {
			return gemini.NewInference(nil, opts...), nil
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewInference(client, opts...), nil
	}

	return nil, carpe.Errorf(carpe.EINVALID, "unknown provider %q", provider)
}

// decorateInference wraps next with, from the inside out: a circuit
// breaker, a rate limiter, metrics and logging.
func decorateInference(next carpe.InferenceService, provider string, rps float64, reg prometheus.Registerer, logger *slog.Logger) (carpe.InferenceService, error) {
	metrics, err := carpeprometheus.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	var svc carpe.InferenceService = gobreaker.NewInference(next, gobreaker.DefaultConfig(provider), logger)
	svc = rate.NewInference(svc, rps)
	svc = carpeprometheus.NewInference(svc, metrics)
	return carpeslog.NewLoggingInference(svc, logger), nil
}
