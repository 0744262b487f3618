package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/destiner/carpe"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ carpe.ArticleService = (*ArticleService)(nil)

const articleColumns = `id, url, title, cover_image_url,
	reader_title, reader_author, reader_excerpt, reader_content, reader_html,
	summary, summary_hash, tokens, created_at, read_at`

// ArticleService implements carpe.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle creates a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, article *carpe.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.CreatedAt = time.Now().UTC().Truncate(time.Second)

	reader := readerColumns(article.ReaderMode)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.URL, article.Title, article.CoverImageURL,
		reader[0], reader[1], reader[2], reader[3], reader[4],
		article.Summary, article.SummaryHash, article.Tokens,
		article.CreatedAt.Format(time.RFC3339), formatNullTime(article.ReadAt))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return carpe.Errorf(carpe.ECONFLICT, "article already saved: %s", article.URL)
	}
	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*carpe.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, carpe.Errorf(carpe.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter carpe.ArticleFilter) ([]*carpe.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + articleColumns + ` FROM articles WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Read != nil {
		if *filter.Read {
			query.WriteString(" AND read_at IS NOT NULL")
		} else {
			query.WriteString(" AND read_at IS NULL")
		}
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite requires LIMIT before OFFSET.
	if filter.Offset > 0 && filter.Limit <= 0 {
		query.WriteString(" LIMIT -1")
	}
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*carpe.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// UpdateArticle updates an existing article.
func (s *ArticleService) UpdateArticle(ctx context.Context, id string, upd carpe.ArticleUpdate) (*carpe.Article, error) {
	if upd.ReadAt != nil && upd.ClearReadAt {
		return nil, carpe.Errorf(carpe.EINVALID, "cannot set and clear read time together")
	}

	article, err := s.FindArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		article.Title = *upd.Title
	}
	if upd.CoverImageURL != nil {
		article.CoverImageURL = *upd.CoverImageURL
	}
	if upd.ReaderMode != nil {
		article.ReaderMode = upd.ReaderMode
	}
	if upd.Summary != nil {
		article.Summary = *upd.Summary
	}
	if upd.SummaryHash != nil {
		article.SummaryHash = *upd.SummaryHash
	}
	if upd.Tokens != nil {
		article.Tokens = *upd.Tokens
	}
	if upd.ReadAt != nil {
		article.MarkRead(upd.ReadAt.UTC().Truncate(time.Second))
	}
	if upd.ClearReadAt {
		article.MarkUnread()
	}

	if err := article.Validate(); err != nil {
		return nil, err
	}

	reader := readerColumns(article.ReaderMode)
	_, err = s.db.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, cover_image_url = ?,
			reader_title = ?, reader_author = ?, reader_excerpt = ?, reader_content = ?, reader_html = ?,
			summary = ?, summary_hash = ?, tokens = ?, read_at = ?
		WHERE id = ?
	`, article.Title, article.CoverImageURL,
		reader[0], reader[1], reader[2], reader[3], reader[4],
		article.Summary, article.SummaryHash, article.Tokens, formatNullTime(article.ReadAt), id)
	if err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return carpe.Errorf(carpe.ENOTFOUND, "article not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*carpe.Article, error) {
	var a carpe.Article
	var reader [5]sql.NullString
	var createdAt string
	var readAt sql.NullString

	if err := row.Scan(&a.ID, &a.URL, &a.Title, &a.CoverImageURL,
		&reader[0], &reader[1], &reader[2], &reader[3], &reader[4],
		&a.Summary, &a.SummaryHash, &a.Tokens, &createdAt, &readAt); err != nil {
		return nil, err
	}

	var err error
	a.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		t, err := parseRFC3339(readAt.String, "read_at")
		if err != nil {
			return nil, err
		}
		a.ReadAt = &t
	}

	// reader_content is NULL until the page has been extracted.
	if reader[3].Valid {
		a.ReaderMode = &carpe.ReaderMode{
			Title:   reader[0].String,
			Author:  reader[1].String,
			Excerpt: reader[2].String,
			Content: reader[3].String,
			HTML:    reader[4].String,
		}
	}

	return &a, nil
}

// readerColumns maps a reader view to its nullable columns.
func readerColumns(rm *carpe.ReaderMode) [5]sql.NullString {
	if rm == nil {
		return [5]sql.NullString{}
	}
	return [5]sql.NullString{
		{String: rm.Title, Valid: true},
		{String: rm.Author, Valid: true},
		{String: rm.Excerpt, Valid: true},
		{String: rm.Content, Valid: true},
		{String: rm.HTML, Valid: true},
	}
}
