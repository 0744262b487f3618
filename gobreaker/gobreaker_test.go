package gobreaker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/gobreaker"
	"github.com/destiner/carpe/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() gobreaker.Config {
	cfg := gobreaker.DefaultConfig("test")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cfg.Timeout = time.Hour
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInference(t *testing.T) {
	t.Parallel()

	t.Run("passes through while closed", func(t *testing.T) {
		t.Parallel()

		next := &mock.InferenceService{
			CapabilityFn: func(context.Context) carpe.CapabilityState { return carpe.Available() },
			GenerateFn: func(_ context.Context, req carpe.GenerateRequest) (string, error) {
				return "echo " + req.UserText, nil
			},
		}
		inf := gobreaker.NewInference(next, testConfig(), discardLogger())

		out, err := inf.Generate(context.Background(), carpe.GenerateRequest{UserText: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "echo hi", out)
		assert.True(t, inf.Capability(context.Background()).Available)
		assert.Equal(t, "closed", inf.State())
	})

	t.Run("opens after repeated failures", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("upstream 500")
		next := &mock.InferenceService{
			CapabilityFn: func(context.Context) carpe.CapabilityState { return carpe.Available() },
			GenerateFn: func(context.Context, carpe.GenerateRequest) (string, error) {
				return "", boom
			},
		}
		inf := gobreaker.NewInference(next, testConfig(), discardLogger())

		for range 2 {
			_, err := inf.Generate(context.Background(), carpe.GenerateRequest{})
			assert.ErrorIs(t, err, boom)
		}

		assert.Equal(t, "open", inf.State())
		assert.Equal(t, carpe.Unavailable(carpe.ReasonModelNotReady), inf.Capability(context.Background()))

		_, err := inf.Generate(context.Background(), carpe.GenerateRequest{})

		assert.Equal(t, carpe.EUNAVAILABLE, carpe.ErrorCode(err))
		assert.Equal(t, "AI model not ready. Please try again later.", carpe.ErrorMessage(err))
		assert.Equal(t, 2, next.Calls())
	})

	t.Run("cancellation does not trip", func(t *testing.T) {
		t.Parallel()

		next := &mock.InferenceService{
			CapabilityFn: func(context.Context) carpe.CapabilityState { return carpe.Available() },
			GenerateFn: func(context.Context, carpe.GenerateRequest) (string, error) {
				return "", context.Canceled
			},
		}
		inf := gobreaker.NewInference(next, testConfig(), discardLogger())

		for range 5 {
			_, err := inf.Generate(context.Background(), carpe.GenerateRequest{})
			assert.ErrorIs(t, err, context.Canceled)
		}

		assert.Equal(t, "closed", inf.State())
	})

	t.Run("reports wrapped state while closed", func(t *testing.T) {
		t.Parallel()

		next := &mock.InferenceService{
			CapabilityFn: func(context.Context) carpe.CapabilityState {
				return carpe.Unavailable(carpe.ReasonNotEnabled)
			},
		}
		inf := gobreaker.NewInference(next, testConfig(), discardLogger())

		assert.Equal(t, carpe.Unavailable(carpe.ReasonNotEnabled), inf.Capability(context.Background()))
	})
}
