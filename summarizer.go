package carpe

import "context"

// NoRelevantInformation is emitted by a per-section answer call when the
// section has nothing relevant to the question. Only the final synthesis
// decides whether the question is answerable overall.
const NoRelevantInformation = "No relevant information found in this section."

// Summarizer produces a summary of arbitrary-length text.
type Summarizer interface {
	// Summarize returns a summary of content.
	// Returns EMISSING for empty content, EUNAVAILABLE when the inference
	// capability is unavailable and EINFERENCE when a model call fails.
	Summarize(ctx context.Context, content string) (string, error)
}

// Answerer answers a question over arbitrary-length text.
type Answerer interface {
	// Answer answers question using only content.
	// Fails with the same codes as Summarize.
	Answer(ctx context.Context, content, question string) (string, error)
}
