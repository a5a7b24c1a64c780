package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tbexpert/internal/models"
)

type ArticleRepository struct {
	DB *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{DB: db}
}

// Базовая выборка: слаги рубрик и тегов собираем массивами, чтобы не ходить
// за ними отдельными запросами.
const articleSelect = `
	SELECT a.id, a.title, a.alias, COALESCE(a.description,''), a.content,
	       a.author_id, COALESCE(a.pseudonym,''),
	       a.published_date, a.created_at, a.updated_at,
	       a.view_count, COALESCE(a.article_type,''), COALESCE(a.article_status,TRUE),
	       a.is_featured, a.is_popular,
	       COALESCE(array_agg(DISTINCT c.slug) FILTER (WHERE c.slug IS NOT NULL), '{}'),
	       COALESCE(array_agg(DISTINCT t.slug) FILTER (WHERE t.slug IS NOT NULL), '{}')
	FROM articles a
	LEFT JOIN article_categories ac ON ac.article_id = a.id
	LEFT JOIN categories c ON c.id = ac.category_id
	LEFT JOIN article_tags atg ON atg.article_id = a.id
	LEFT JOIN tags t ON t.id = atg.tag_id
`

const articleGroup = ` GROUP BY a.id`

func scanArticles(rows *sql.Rows) ([]*models.Article, error) {
	var res []*models.Article
	for rows.Next() {
		a := &models.Article{}
		var (
			authorID sql.NullInt64
			cats     pq.StringArray
			tags     pq.StringArray
		)
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Alias, &a.Description, &a.Content,
			&authorID, &a.Pseudonym,
			&a.PublishedDate, &a.CreatedAt, &a.UpdatedAt,
			&a.ViewCount, &a.Type, &a.Status,
			&a.IsFeatured, &a.IsPopular,
			&cats, &tags,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if authorID.Valid {
			id := authorID.Int64
			a.AuthorID = &id
		}
		a.Categories = cats
		a.Tags = tags
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ArticleRepository) list(where string, args ...any) ([]*models.Article, error) {
	q := articleSelect
	if where != "" {
		q += " WHERE " + where
	}
	q += articleGroup + " ORDER BY a.published_date DESC"
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// ListPublished — все опубликованные новости портала (status + тип "P").
func (r *ArticleRepository) ListPublished() ([]*models.Article, error) {
	return r.list(`a.article_status = TRUE AND a.article_type = $1`, models.ArticleTypePortal)
}

func (r *ArticleRepository) GetByAlias(alias string) (*models.Article, error) {
	articles, err := r.list(`a.alias = $1`, alias)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, sql.ErrNoRows
	}
	return articles[0], nil
}

// IncrementViews — атомарный инкремент счётчика, без read-modify-write.
func (r *ArticleRepository) IncrementViews(alias string) error {
	res, err := r.DB.Exec(`UPDATE articles SET view_count = view_count + 1 WHERE alias = $1`, alias)
	if err != nil {
		return fmt.Errorf("increment article views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ArticleRepository) ListByCategorySlug(slug string) ([]*models.Article, error) {
	return r.list(`a.article_status = TRUE AND a.article_type = $1
		AND a.id IN (SELECT ac2.article_id FROM article_categories ac2
		             JOIN categories c2 ON c2.id = ac2.category_id WHERE c2.slug = $2)`,
		models.ArticleTypePortal, slug)
}

func (r *ArticleRepository) ListByTagSlug(slug string) ([]*models.Article, error) {
	return r.list(`a.article_status = TRUE AND a.article_type = $1
		AND a.id IN (SELECT atg2.article_id FROM article_tags atg2
		             JOIN tags t2 ON t2.id = atg2.tag_id WHERE t2.slug = $2)`,
		models.ArticleTypePortal, slug)
}

// ListByAuthor — материалы автора; limit <= 0 означает "без ограничения".
func (r *ArticleRepository) ListByAuthor(authorID int64, limit int) ([]*models.Article, error) {
	q := articleSelect + ` WHERE a.article_status = TRUE AND a.article_type = $1 AND a.author_id = $2` +
		articleGroup + ` ORDER BY a.published_date DESC LIMIT NULLIF($3, 0)`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.DB.Query(q, models.ArticleTypePortal, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// Search — регистронезависимый поиск по заголовку и тексту.
func (r *ArticleRepository) Search(query string) ([]*models.Article, error) {
	return r.list(`a.article_status = TRUE AND a.article_type = $1
		AND (a.title ILIKE '%' || $2 || '%' OR a.content ILIKE '%' || $2 || '%')`,
		models.ArticleTypePortal, query)
}

// ListPopularSince — сайдбар "популярное": свежие по окну, сортировка по просмотрам.
func (r *ArticleRepository) ListPopularSince(since time.Time, limit int) ([]*models.Article, error) {
	q := articleSelect + ` WHERE a.article_status = TRUE AND a.article_type = $1 AND a.published_date >= $2` +
		articleGroup + ` ORDER BY a.view_count DESC LIMIT $3`
	rows, err := r.DB.Query(q, models.ArticleTypePortal, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// ListLatest — дайджест свежих публикаций.
func (r *ArticleRepository) ListLatest(limit int) ([]*models.Article, error) {
	q := articleSelect + articleGroup + ` ORDER BY a.published_date DESC LIMIT $1`
	rows, err := r.DB.Query(q, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

// ===== рубрики и теги =====

func (r *ArticleRepository) ListCategories() ([]*models.Category, error) {
	rows, err := r.DB.Query(`SELECT id, slug, title, COALESCE(seo_text,''), COALESCE(description,''), level FROM categories ORDER BY level, title`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var res []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.SeoText, &c.Desc, &c.Level); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *ArticleRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := r.DB.QueryRow(
		`SELECT id, slug, title, COALESCE(seo_text,''), COALESCE(description,''), level FROM categories WHERE slug = $1`,
		slug,
	).Scan(&c.ID, &c.Slug, &c.Title, &c.SeoText, &c.Desc, &c.Level)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ArticleRepository) ListTags() ([]*models.Tag, error) {
	rows, err := r.DB.Query(`SELECT id, slug, title, COALESCE(description,''), COALESCE(seo_tag,''), index_level FROM tags ORDER BY index_level DESC, title`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var res []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.SeoTag, &t.IndexLevel); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *ArticleRepository) GetTagBySlug(slug string) (*models.Tag, error) {
	t := &models.Tag{}
	err := r.DB.QueryRow(
		`SELECT id, slug, title, COALESCE(description,''), COALESCE(seo_tag,''), index_level FROM tags WHERE slug = $1`,
		slug,
	).Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.SeoTag, &t.IndexLevel)
	if err != nil {
		return nil, err
	}
	return t, nil
}
