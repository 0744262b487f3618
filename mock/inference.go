package mock

import (
	"context"
	"sync"

	"github.com/destiner/carpe"
)

var (
	_ carpe.InferenceService = (*InferenceService)(nil)
	_ carpe.TokenCounter     = (*TokenCounter)(nil)
)

// InferenceService is a mock implementation of carpe.InferenceService.
// It records every Generate request so tests can assert on call counts
// and prompts. Safe for concurrent use.
type InferenceService struct {
	CapabilityFn func(ctx context.Context) carpe.CapabilityState
	GenerateFn   func(ctx context.Context, req carpe.GenerateRequest) (string, error)

	mu       sync.Mutex
	requests []carpe.GenerateRequest
}

func (s *InferenceService) Capability(ctx context.Context) carpe.CapabilityState {
	return s.CapabilityFn(ctx)
}

func (s *InferenceService) Generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	return s.GenerateFn(ctx, req)
}

// Requests returns a copy of the Generate requests received so far.
func (s *InferenceService) Requests() []carpe.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]carpe.GenerateRequest(nil), s.requests...)
}

// Calls returns the number of Generate calls received so far.
func (s *InferenceService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// TokenCounter is a mock implementation of carpe.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
