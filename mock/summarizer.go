package mock

import (
	"context"

	"github.com/destiner/carpe"
)

var (
	_ carpe.Summarizer = (*Summarizer)(nil)
	_ carpe.Answerer   = (*Answerer)(nil)
)

// Summarizer is a mock implementation of carpe.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, content string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	return s.SummarizeFn(ctx, content)
}

// Answerer is a mock implementation of carpe.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, content, question string) (string, error)
}

func (a *Answerer) Answer(ctx context.Context, content, question string) (string, error) {
	return a.AnswerFn(ctx, content, question)
}
