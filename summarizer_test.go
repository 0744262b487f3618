package carpe_test

import (
	"context"
	"testing"

	"github.com/destiner/carpe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoAnswerer verifies Answerer interface can be implemented.
type echoAnswerer struct {
	AnswerFn func(ctx context.Context, content, question string) (string, error)
}

func (a *echoAnswerer) Answer(ctx context.Context, content, question string) (string, error) {
	return a.AnswerFn(ctx, content, question)
}

// Compile-time check that echoAnswerer implements Answerer.
var _ carpe.Answerer = (*echoAnswerer)(nil)

func TestAnswerer_CanBeImplemented(t *testing.T) {
	t.Parallel()

	answerer := &echoAnswerer{
		AnswerFn: func(_ context.Context, content, question string) (string, error) {
			return "answer to " + question, nil
		},
	}

	answer, err := answerer.Answer(context.Background(), "article text", "what is this?")

	require.NoError(t, err)
	assert.Equal(t, "answer to what is this?", answer)
}

func TestNoRelevantInformation_IsStable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No relevant information found in this section.", carpe.NoRelevantInformation)
}
