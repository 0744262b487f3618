package mock_test

import (
	"context"
	"sync"
	"testing"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferenceService_RecordsRequests(t *testing.T) {
	t.Parallel()

	svc := &mock.InferenceService{
		GenerateFn: func(_ context.Context, req carpe.GenerateRequest) (string, error) {
			return "out:" + req.UserText, nil
		},
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Generate(context.Background(), carpe.GenerateRequest{UserText: "x"})
		}()
	}
	wg.Wait()

	out, err := svc.Generate(context.Background(), carpe.GenerateRequest{UserText: "last", MaxOutputTokens: 7})

	require.NoError(t, err)
	assert.Equal(t, "out:last", out)
	assert.Equal(t, 11, svc.Calls())
	reqs := svc.Requests()
	require.Len(t, reqs, 11)
	assert.Equal(t, 7, reqs[10].MaxOutputTokens)
}

func TestNavigationSource_RepeatsLastEvent(t *testing.T) {
	t.Parallel()

	src := &mock.NavigationSource{Events: []carpe.NavigationEvent{
		{ID: "a", Kind: carpe.NavigationPending},
		{ID: "a", Kind: carpe.NavigationFinished},
	}}

	first, ok := src.CurrentNavigationEvent()
	require.True(t, ok)
	assert.Equal(t, carpe.NavigationPending, first.Kind)

	for range 3 {
		ev, ok := src.CurrentNavigationEvent()
		require.True(t, ok)
		assert.Equal(t, carpe.NavigationFinished, ev.Kind)
	}
	assert.Equal(t, 4, src.Reads())
}

func TestNavigationSource_EmptyReportsNoEvent(t *testing.T) {
	t.Parallel()

	_, ok := (&mock.NavigationSource{}).CurrentNavigationEvent()

	assert.False(t, ok)
}
