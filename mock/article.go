package mock

import (
	"context"

	"github.com/destiner/carpe"
)

var _ carpe.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of carpe.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *carpe.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*carpe.Article, error)
	FindArticlesFn    func(ctx context.Context, filter carpe.ArticleFilter) ([]*carpe.Article, error)
	UpdateArticleFn   func(ctx context.Context, id string, upd carpe.ArticleUpdate) (*carpe.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *carpe.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*carpe.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter carpe.ArticleFilter) ([]*carpe.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) UpdateArticle(ctx context.Context, id string, upd carpe.ArticleUpdate) (*carpe.Article, error) {
	return s.UpdateArticleFn(ctx, id, upd)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
