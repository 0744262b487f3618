package mapreduce

import (
	"context"

	"github.com/destiner/carpe"
)

var _ carpe.Answerer = (*Answerer)(nil)

// Answerer answers questions about content of any length. Sections with
// nothing relevant report carpe.NoRelevantInformation; deciding that the
// whole article lacks an answer is left to the reduce call.
type Answerer struct {
	pipeline
}

// NewAnswerer creates an Answerer backed by the given inference service.
func NewAnswerer(inference carpe.InferenceService, opts ...Option) *Answerer {
	return &Answerer{pipeline{
		inference: inference,
		gate:      NewGate(inference),
		cfg:       newConfig(opts),
	}}
}

// Availability reports whether answers can currently be generated.
func (a *Answerer) Availability(ctx context.Context) carpe.CapabilityState {
	return a.gate.Availability(ctx)
}

// Answer answers question using only content.
func (a *Answerer) Answer(ctx context.Context, content, question string) (string, error) {
	if err := a.gate.Check(ctx); err != nil {
		return "", err
	}
	if isBlank(content) {
		return "", carpe.Errorf(carpe.EMISSING, "content required")
	}
	if isBlank(question) {
		return "", carpe.Errorf(carpe.EMISSING, "question required")
	}

	return a.run(ctx, content, requests{
		single: func(carpe.ChunkPlan) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: answerInstruction,
				UserText:          questionText(question, "Article:\n\n"+content),
				MaxOutputTokens:   AnswerMaxTokens,
			}
		},
		mapper: func(chunk carpe.Chunk) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: answerChunkInstruction(chunk),
				UserText:          questionText(question, "Section:\n\n"+chunk.Text),
				MaxOutputTokens:   ChunkMaxTokens,
			}
		},
		reduce: func(_ carpe.ChunkPlan, partials []string) carpe.GenerateRequest {
			return carpe.GenerateRequest{
				SystemInstruction: answerReduceInstruction,
				UserText:          questionText(question, "Section answers:\n\n"+joinPartials(partials)),
				MaxOutputTokens:   AnswerMaxTokens,
			}
		},
	})
}
