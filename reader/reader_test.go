package reader_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/destiner/carpe"
	"github.com/destiner/carpe/mock"
	"github.com/destiner/carpe/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `<html><head><title>Essay</title></head><body><article>Body</article></body></html>`

// newSaveService returns a service whose collaborators succeed, with
// created articles captured in *created.
func newSaveService(created *[]*carpe.Article) *reader.Service {
	return &reader.Service{
		Articles: &mock.ArticleService{
			FindArticlesFn: func(_ context.Context, _ carpe.ArticleFilter) ([]*carpe.Article, error) {
				return nil, nil
			},
			CreateArticleFn: func(_ context.Context, a *carpe.Article) error {
				a.ID = "id-1"
				*created = append(*created, a)
				return nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return pageHTML, nil
			},
		},
		Metadata: &mock.MetadataExtractor{
			ExtractMetadataFn: func(_ string) (*carpe.PageMetadata, error) {
				return &carpe.PageMetadata{Title: "Essay", CoverImageURL: "https://example.com/c.png"}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, _ string) (*carpe.ReaderMode, error) {
				return &carpe.ReaderMode{Title: "Essay (reader)", Content: "Body", HTML: "<p>Body</p>"}, nil
			},
		},
		Tokens: &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text), nil
			},
		},
	}
}

func TestService_Save(t *testing.T) {
	t.Parallel()

	t.Run("stores extracted article", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)

		article, err := svc.Save(context.Background(), "https://example.com/essay")

		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "id-1", article.ID)
		assert.Equal(t, "https://example.com/essay", article.URL)
		assert.Equal(t, "Essay", article.Title)
		assert.Equal(t, "https://example.com/c.png", article.CoverImageURL)
		assert.Equal(t, "Body", article.Content())
		assert.Equal(t, 4, article.Tokens)
	})

	t.Run("falls back to reader title then URL", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.Metadata = &mock.MetadataExtractor{
			ExtractMetadataFn: func(_ string) (*carpe.PageMetadata, error) {
				return &carpe.PageMetadata{}, nil
			},
		}

		article, err := svc.Save(context.Background(), "https://example.com/essay")
		require.NoError(t, err)
		assert.Equal(t, "Essay (reader)", article.Title)

		svc.Extractor = &mock.Extractor{
			ExtractFn: func(_, _ string) (*carpe.ReaderMode, error) {
				return &carpe.ReaderMode{}, nil
			},
		}
		article, err = svc.Save(context.Background(), "https://example.com/other")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/other", article.Title)
		assert.Zero(t, article.Tokens)
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		t.Parallel()

		svc := &reader.Service{}

		_, err := svc.Save(context.Background(), "ftp://example.com")

		require.Error(t, err)
		assert.Equal(t, carpe.EINVALID, carpe.ErrorCode(err))
	})

	t.Run("returns ECONFLICT without fetching when already saved", func(t *testing.T) {
		t.Parallel()

		existing := &carpe.Article{ID: "old", URL: "https://example.com/essay", Title: "Essay"}
		svc := &reader.Service{
			Articles: &mock.ArticleService{
				FindArticlesFn: func(_ context.Context, f carpe.ArticleFilter) ([]*carpe.Article, error) {
					require.NotNil(t, f.URL)
					assert.Equal(t, existing.URL, *f.URL)
					return []*carpe.Article{existing}, nil
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					t.Fatal("fetch should not be called")
					return "", nil
				},
			},
		}

		article, err := svc.Save(context.Background(), existing.URL)

		require.Error(t, err)
		assert.Equal(t, carpe.ECONFLICT, carpe.ErrorCode(err))
		assert.Same(t, existing, article)
	})

	t.Run("retries transient fetch failures", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.RetryDelays = []time.Duration{0, 0}
		attempts := 0
		svc.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				if attempts < 3 {
					return "", errors.New("connection reset")
				}
				return pageHTML, nil
			},
		}

		_, err := svc.Save(context.Background(), "https://example.com/essay")

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after last retry", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.RetryDelays = []time.Duration{0}
		attempts := 0
		svc.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				return "", errors.New("connection reset")
			},
		}

		_, err := svc.Save(context.Background(), "https://example.com/essay")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 2, attempts)
		assert.Empty(t, created)
	})

	t.Run("does not retry not found", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.RetryDelays = []time.Duration{0, 0, 0}
		attempts := 0
		svc.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				attempts++
				return "", carpe.Errorf(carpe.ENOTFOUND, "page not found")
			},
		}

		_, err := svc.Save(context.Background(), "https://example.com/essay")

		require.Error(t, err)
		assert.Equal(t, carpe.ENOTFOUND, carpe.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("returns context error while waiting to retry", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.RetryDelays = []time.Duration{time.Hour}
		ctx, cancel := context.WithCancel(context.Background())
		svc.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				cancel()
				return "", errors.New("connection reset")
			},
		}

		_, err := svc.Save(ctx, "https://example.com/essay")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("propagates extraction failure", func(t *testing.T) {
		t.Parallel()

		var created []*carpe.Article
		svc := newSaveService(&created)
		svc.Extractor = &mock.Extractor{
			ExtractFn: func(_, _ string) (*carpe.ReaderMode, error) {
				return nil, carpe.Errorf(carpe.EINVALID, "empty HTML input")
			},
		}

		_, err := svc.Save(context.Background(), "https://example.com/essay")

		require.Error(t, err)
		assert.Equal(t, carpe.EINVALID, carpe.ErrorCode(err))
		assert.Empty(t, created)
	})
}

func TestService_Summarize(t *testing.T) {
	t.Parallel()

	newArticle := func() *carpe.Article {
		return &carpe.Article{
			ID:         "a1",
			URL:        "https://example.com",
			Title:      "T",
			ReaderMode: &carpe.ReaderMode{Content: "body text"},
		}
	}

	t.Run("summarizes and stores summary with content hash", func(t *testing.T) {
		t.Parallel()

		var upd carpe.ArticleUpdate
		svc := &reader.Service{
			Articles: &mock.ArticleService{
				FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
					return newArticle(), nil
				},
				UpdateArticleFn: func(_ context.Context, id string, u carpe.ArticleUpdate) (*carpe.Article, error) {
					upd = u
					a := newArticle()
					a.Summary, a.SummaryHash = *u.Summary, *u.SummaryHash
					return a, nil
				},
			},
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(_ context.Context, content string) (string, error) {
					assert.Equal(t, "body text", content)
					return "summary", nil
				},
			},
		}

		article, err := svc.Summarize(context.Background(), "a1", false)

		require.NoError(t, err)
		assert.Equal(t, "summary", article.Summary)
		require.NotNil(t, upd.SummaryHash)
		assert.Equal(t, carpe.ContentHash("body text"), *upd.SummaryHash)
		assert.True(t, article.SummaryCurrent())
	})

	t.Run("reuses current summary", func(t *testing.T) {
		t.Parallel()

		stored := newArticle()
		stored.Summary = "cached"
		stored.SummaryHash = carpe.ContentHash("body text")
		svc := &reader.Service{
			Articles: &mock.ArticleService{
				FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
					return stored, nil
				},
			},
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(_ context.Context, _ string) (string, error) {
					t.Fatal("summarizer should not be called")
					return "", nil
				},
			},
		}

		article, err := svc.Summarize(context.Background(), "a1", false)

		require.NoError(t, err)
		assert.Equal(t, "cached", article.Summary)
	})

	t.Run("recomputes stale or forced summary", func(t *testing.T) {
		t.Parallel()

		for _, tc := range []struct {
			name  string
			hash  string
			force bool
		}{
			{name: "stale hash", hash: "stale"},
			{name: "forced", hash: carpe.ContentHash("body text"), force: true},
		} {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				calls := 0
				svc := &reader.Service{
					Articles: &mock.ArticleService{
						FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
							a := newArticle()
							a.Summary, a.SummaryHash = "old", tc.hash
							return a, nil
						},
						UpdateArticleFn: func(_ context.Context, _ string, u carpe.ArticleUpdate) (*carpe.Article, error) {
							a := newArticle()
							a.Summary = *u.Summary
							return a, nil
						},
					},
					Summarizer: &mock.Summarizer{
						SummarizeFn: func(_ context.Context, _ string) (string, error) {
							calls++
							return "new", nil
						},
					},
				}

				article, err := svc.Summarize(context.Background(), "a1", tc.force)

				require.NoError(t, err)
				assert.Equal(t, 1, calls)
				assert.Equal(t, "new", article.Summary)
			})
		}
	})

	t.Run("does not store on summarizer failure", func(t *testing.T) {
		t.Parallel()

		svc := &reader.Service{
			Articles: &mock.ArticleService{
				FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
					return newArticle(), nil
				},
				UpdateArticleFn: func(_ context.Context, _ string, _ carpe.ArticleUpdate) (*carpe.Article, error) {
					t.Fatal("update should not be called")
					return nil, nil
				},
			},
			Summarizer: &mock.Summarizer{
				SummarizeFn: func(_ context.Context, _ string) (string, error) {
					return "", &carpe.UnavailableError{Reason: carpe.UnavailableReason{Kind: carpe.ReasonNotEnabled}}
				},
			},
		}

		_, err := svc.Summarize(context.Background(), "a1", false)

		require.Error(t, err)
		assert.Equal(t, carpe.EUNAVAILABLE, carpe.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing article", func(t *testing.T) {
		t.Parallel()

		svc := &reader.Service{
			Articles: &mock.ArticleService{
				FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
					return nil, carpe.Errorf(carpe.ENOTFOUND, "article not found")
				},
			},
		}

		_, err := svc.Summarize(context.Background(), "missing", false)

		assert.Equal(t, carpe.ENOTFOUND, carpe.ErrorCode(err))
	})
}

func TestService_Ask(t *testing.T) {
	t.Parallel()

	svc := &reader.Service{
		Articles: &mock.ArticleService{
			FindArticleByIDFn: func(_ context.Context, _ string) (*carpe.Article, error) {
				return &carpe.Article{ReaderMode: &carpe.ReaderMode{Content: "body"}}, nil
			},
		},
		Answerer: &mock.Answerer{
			AnswerFn: func(_ context.Context, content, question string) (string, error) {
				return content + "|" + question, nil
			},
		},
	}

	answer, err := svc.Ask(context.Background(), "a1", "why?")

	require.NoError(t, err)
	assert.Equal(t, "body|why?", answer)
}

func TestService_SetRead(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 28, 12, 0, 0, 0, time.UTC)

	var got []carpe.ArticleUpdate
	svc := &reader.Service{
		Articles: &mock.ArticleService{
			UpdateArticleFn: func(_ context.Context, _ string, u carpe.ArticleUpdate) (*carpe.Article, error) {
				got = append(got, u)
				return &carpe.Article{}, nil
			},
		},
		Now: func() time.Time { return now },
	}

	_, err := svc.SetRead(context.Background(), "a1", true)
	require.NoError(t, err)
	_, err = svc.SetRead(context.Background(), "a1", false)
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].ReadAt)
	assert.Equal(t, now, *got[0].ReadAt)
	assert.True(t, got[1].ClearReadAt)
	assert.Nil(t, got[1].ReadAt)
}
