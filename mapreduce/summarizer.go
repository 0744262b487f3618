package mapreduce

import (
	"context"

	"github.com/destiner/carpe"
)

var _ carpe.Summarizer = (*Summarizer)(nil)

// Summarizer produces a summary of content of any length.
type Summarizer struct {
	pipeline
}

// NewSummarizer creates a Summarizer backed by the given inference service.
func NewSummarizer(inference carpe.InferenceService, opts ...Option) *Summarizer {
	return &Summarizer{pipeline{
		inference: inference,
		gate:      NewGate(inference),
		cfg:       newConfig(opts),
	}}
}

// Availability reports whether summaries can currently be generated.
func (s *Summarizer) Availability(ctx context.Context) carpe.CapabilityState {
	return s.gate.Availability(ctx)
}

// Summarize returns a summary sized to the length of content.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	if err := s.gate.Check(ctx); err != nil {
		return "", err
	}
	if isBlank(content) {
		return "", carpe.Errorf(carpe.EMISSING, "content required")
	}

	return s.run(ctx, content, requests{
		single: func(plan carpe.ChunkPlan) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: summaryInstruction(plan),
				UserText:          content,
				MaxOutputTokens:   SummaryMaxTokens,
			}
		},
		mapper: func(chunk carpe.Chunk) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: summaryChunkInstruction(chunk),
				UserText:          chunk.Text,
				MaxOutputTokens:   ChunkMaxTokens,
			}
		},
		reduce: func(plan carpe.ChunkPlan, partials []string) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: summaryReduceInstruction(plan),
				UserText:          joinPartials(partials),
				MaxOutputTokens:   SummaryMaxTokens,
			}
		},
	})
}
