package carpe

import (
	"context"
	"strings"
	"time"
)

// Article represents a saved web page.
type Article struct {
	ID            string      `json:"id"`
	URL           string      `json:"url"`
	Title         string      `json:"title"`
	CoverImageURL string      `json:"coverImageUrl,omitempty"`
	ReaderMode    *ReaderMode `json:"readerMode,omitempty"`

	// Summary is the last generated summary. SummaryHash is the content
	// hash of the reader text it was generated from.
	Summary     string `json:"summary,omitempty"`
	SummaryHash string `json:"summaryHash,omitempty"`

	// Tokens is the approximate token count of the reader text.
	Tokens int `json:"tokens"`

	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if !strings.HasPrefix(a.URL, "http://") && !strings.HasPrefix(a.URL, "https://") {
		return Errorf(EINVALID, "article URL must use http or https")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// Content returns the reader text of the article, or "" if it has not been
// extracted.
func (a *Article) Content() string {
	if a.ReaderMode == nil {
		return ""
	}
	return a.ReaderMode.Content
}

// SummaryCurrent reports whether the stored summary was generated from the
// current reader text.
func (a *Article) SummaryCurrent() bool {
	return a.Summary != "" && a.SummaryHash == ContentHash(a.Content())
}

// MarkRead records that the article was read at t.
func (a *Article) MarkRead(t time.Time) {
	a.ReadAt = &t
}

// MarkUnread clears the read timestamp.
func (a *Article) MarkUnread() {
	a.ReadAt = nil
}

// IsRead reports whether the article has been read.
func (a *Article) IsRead() bool {
	return a.ReadAt != nil
}

// ArticleService represents a service for managing articles.
type ArticleService interface {
	// CreateArticle creates a new article.
	// Returns ECONFLICT if an article with the same URL exists.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// UpdateArticle updates an existing article.
	// Returns ENOTFOUND if the article does not exist.
	UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) (*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID   *string `json:"id"`
	URL  *string `json:"url"`
	Read *bool   `json:"read"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ArticleUpdate represents fields that can be updated on an article.
// ReadAt and ClearReadAt are mutually exclusive.
type ArticleUpdate struct {
	Title         *string     `json:"title"`
	CoverImageURL *string     `json:"coverImageUrl"`
	ReaderMode    *ReaderMode `json:"readerMode"`
	Summary       *string     `json:"summary"`
	SummaryHash   *string     `json:"summaryHash"`
	Tokens        *int        `json:"tokens"`
	ReadAt        *time.Time  `json:"readAt"`
	ClearReadAt   bool        `json:"clearReadAt"`
}
