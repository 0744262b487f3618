// Package reader saves web articles and runs the summary and question
// pipelines over their reader text.
package reader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/destiner/carpe"
)

// Service coordinates fetching, extraction, storage and inference for
// saved articles.
type Service struct {
	Articles   carpe.ArticleService
	Fetcher    carpe.Fetcher
	Extractor  carpe.Extractor
	Metadata   carpe.MetadataExtractor
	Tokens     carpe.TokenCounter
	Summarizer carpe.Summarizer
	Answerer   carpe.Answerer

	// RetryDelays are the waits between fetch attempts. Nil means no retry.
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Save fetches url, extracts its reader view and stores it as a new article.
// Returns ECONFLICT with the existing article if url is already saved.
func (s *Service) Save(ctx context.Context, url string) (*carpe.Article, error) {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, carpe.Errorf(carpe.EINVALID, "URL must use http or https: %q", url)
	}

	existing, err := s.Articles.FindArticles(ctx, carpe.ArticleFilter{URL: &url, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	if len(existing) > 0 {
		return existing[0], carpe.Errorf(carpe.ECONFLICT, "article already saved: %s", url)
	}

	html, err := fetchWithRetry(ctx, s.Fetcher, url, s.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	meta, err := s.Metadata.ExtractMetadata(html)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	rm, err := s.Extractor.Extract(html, url)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	article := &carpe.Article{
		URL:           url,
		Title:         firstNonEmpty(meta.Title, rm.Title, url),
		CoverImageURL: meta.CoverImageURL,
		ReaderMode:    rm,
	}

	if s.Tokens != nil && rm.Content != "" {
		article.Tokens, err = s.Tokens.CountTokens(ctx, rm.Content)
		if err != nil {
			return nil, fmt.Errorf("count tokens: %w", err)
		}
	}

	if err := s.Articles.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Summarize returns the article with a summary of its reader text. A stored
// summary is reused while its hash matches the content unless force is set.
func (s *Service) Summarize(ctx context.Context, id string, force bool) (*carpe.Article, error) {
	article, err := s.Articles.FindArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !force && article.SummaryCurrent() {
		return article, nil
	}

	content := article.Content()
	summary, err := s.Summarizer.Summarize(ctx, content)
	if err != nil {
		return nil, err
	}

	hash := carpe.ContentHash(content)
	return s.Articles.UpdateArticle(ctx, id, carpe.ArticleUpdate{
		Summary:     &summary,
		SummaryHash: &hash,
	})
}

// Ask answers question over the article's reader text. Answers are not stored.
func (s *Service) Ask(ctx context.Context, id, question string) (string, error) {
	article, err := s.Articles.FindArticleByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Answerer.Answer(ctx, article.Content(), question)
}

// SetRead marks the article read at the current time, or unread.
func (s *Service) SetRead(ctx context.Context, id string, read bool) (*carpe.Article, error) {
	if !read {
		return s.Articles.UpdateArticle(ctx, id, carpe.ArticleUpdate{ClearReadAt: true})
	}
	now := s.now()
	return s.Articles.UpdateArticle(ctx, id, carpe.ArticleUpdate{ReadAt: &now})
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
