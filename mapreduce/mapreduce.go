// Package mapreduce implements summarization and question answering over
// content of any length using a bounded sequence of inference calls.
//
// Content that fits in a single chunk is handled with one call. Longer
// content is split into chunks, each chunk is processed by a "map" call,
// and the partial results are combined by exactly one "reduce" call.
package mapreduce

import (
	"context"
	"strings"

	"github.com/destiner/carpe"
	"golang.org/x/sync/errgroup"
)

// Output token budgets.
const (
	SummaryMaxTokens = 1000
	ChunkMaxTokens   = 500
	AnswerMaxTokens  = 500
)

// DefaultMapConcurrency processes chunks one at a time.
const DefaultMapConcurrency = 1

// Option configures a Summarizer or Answerer.
type Option func(*config)

type config struct {
	chunkSize   int
	concurrency int
}

func newConfig(opts []Option) config {
	cfg := config{
		chunkSize:   carpe.DefaultChunkSize,
		concurrency: DefaultMapConcurrency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithChunkSize sets the number of characters sent to one map call.
// Values of zero or less keep the default.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithMapConcurrency sets how many map calls may run at once. Partial
// results are still reduced in chunk order. Values below one keep the
// default.
func WithMapConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// pipeline runs the shared map-reduce flow. The request builders decide
// what each call asks for.
type pipeline struct {
	inference carpe.InferenceService
	gate      *Gate
	cfg       config
}

type requests struct {
	single func(plan carpe.ChunkPlan) carpe.GenerateRequest
	mapper func(chunk carpe.Chunk) carpe.GenerateRequest
	reduce func(plan carpe.ChunkPlan, partials []string) carpe.GenerateRequest
}

func (p *pipeline) run(ctx context.Context, content string, reqs requests) (string, error) {
	n := carpe.ContentLength(content)
	plan := carpe.PlanChunks(n)
	plan.ChunkSize = p.cfg.chunkSize

	if n <= plan.ChunkSize {
		return p.generate(ctx, reqs.single(plan))
	}

	chunks := carpe.SplitChunks(content, plan.ChunkSize)
	partials, err := p.mapChunks(ctx, chunks, reqs.mapper)
	if err != nil {
		return "", err
	}

	return p.generate(ctx, reqs.reduce(plan, partials))
}

// mapChunks issues one call per chunk and returns the results indexed by
// chunk position. The first failure stops any further calls.
func (p *pipeline) mapChunks(ctx context.Context, chunks []carpe.Chunk, build func(carpe.Chunk) carpe.GenerateRequest) ([]string, error) {
	partials := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.concurrency)

	for _, chunk := range chunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out, err := p.generate(gctx, build(chunk))
			if err != nil {
				return err
			}
			partials[chunk.Index] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return partials, nil
}

// generate issues a single call. Cancellation is checked first and is
// returned as is; any other failure is wrapped as an inference error.
func (p *pipeline) generate(ctx context.Context, req carpe.GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := p.inference.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &carpe.InferenceError{Err: err}
	}
	return out, nil
}

func joinPartials(partials []string) string {
	return strings.Join(partials, "\n\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
