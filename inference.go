package carpe

import "context"

// GenerateRequest is a single bounded call to a text-generation model.
type GenerateRequest struct {
	// SystemInstruction frames the task for the model.
	SystemInstruction string

	// UserText is the text the instruction applies to.
	UserText string

	// MaxOutputTokens caps the length of the generated text.
	MaxOutputTokens int
}

// InferenceService is the opaque text-generation capability the pipeline
// orchestrates. Implementations wrap a specific provider.
type InferenceService interface {
	// Capability reports whether the service can serve requests right now.
	// It is queried fresh on every pipeline call.
	Capability(ctx context.Context) CapabilityState

	// Generate runs one inference call and returns the generated text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
