package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tbexpert/internal/cache"
	"tbexpert/internal/listing"
	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
)

const (
	// окно "популярного": материалы за последние трое суток
	popularWindow = 3 * 24 * time.Hour

	searchPageSize = 10
	tagPageSize    = 10
	authorPageSize = 12

	digestLimit      = 5
	societyNewsLimit = 5
	societySlug      = "obshchestvo"
)

var articleMeta = listing.Meta[*models.Article]{
	Category: func(a *models.Article) string {
		if len(a.Categories) > 0 {
			return a.Categories[0]
		}
		return ""
	},
	Search:  func(a *models.Article) (string, string) { return a.Title, a.Description },
	DateOf:  func(a *models.Article) int64 { return a.PublishedDate.Unix() },
	Views:   func(a *models.Article) int { return a.ViewCount },
	Popular: func(a *models.Article) bool { return a.IsPopular },
}

// NewsService — новостная часть портала: лента, поиск, рубрики, теги,
// страницы авторов и сайдбар "популярное".
type NewsService struct {
	articles *repositories.ArticleRepository
	cache    *cache.Cache
}

func NewNewsService(articles *repositories.ArticleRepository, c *cache.Cache) *NewsService {
	return &NewsService{articles: articles, cache: c}
}

// Popular — материалы за последние трое суток по убыванию просмотров.
// Результат кэшируется, при выключенном redis идём сразу в БД.
func (s *NewsService) Popular(ctx context.Context, now time.Time, limit int) ([]*models.Article, error) {
	key := fmt.Sprintf("popular_news:%d", limit)
	if cached, ok := s.cache.GetArticles(ctx, key); ok {
		return cached, nil
	}
	articles, err := s.articles.ListPopularSince(now.Add(-popularWindow), limit)
	if err != nil {
		return nil, err
	}
	s.cache.SetArticles(ctx, key, articles)
	return articles, nil
}

// SocietyNews — свежие материалы рубрики "общество" для сайдбара.
func (s *NewsService) SocietyNews() ([]*models.Article, error) {
	articles, err := s.articles.ListByCategorySlug(societySlug)
	if err != nil {
		return nil, err
	}
	return listing.Select(articles, articleMeta, listing.Params{Limit: societyNewsLimit}), nil
}

// IndexPage — данные главной: опубликованные статьи, рубрики, теги.
type IndexPage struct {
	Articles   []*models.Article  `json:"articles"`
	Categories []*models.Category `json:"categories"`
	Tags       []*models.Tag      `json:"tags"`
}

func (s *NewsService) Index() (*IndexPage, error) {
	articles, err := s.articles.ListPublished()
	if err != nil {
		return nil, err
	}
	categories, err := s.articles.ListCategories()
	if err != nil {
		return nil, err
	}
	tags, err := s.articles.ListTags()
	if err != nil {
		return nil, err
	}
	return &IndexPage{Articles: articles, Categories: categories, Tags: tags}, nil
}

// AllNewsPage — страница "все новости" с необязательным поиском по
// заголовку и описанию и дайджестом из пяти свежих материалов.
type AllNewsPage struct {
	Articles   []*models.Article  `json:"articles"`
	Digest     []*models.Article  `json:"digest_articles"`
	Categories []*models.Category `json:"categories"`
	Tags       []*models.Tag      `json:"tags"`
	Query      string             `json:"query,omitempty"`
}

func (s *NewsService) AllNews(query string) (*AllNewsPage, error) {
	articles, err := s.articles.ListPublished()
	if err != nil {
		return nil, err
	}
	filtered := listing.Select(articles, articleMeta, listing.Params{Query: query})

	digest, err := s.articles.ListLatest(digestLimit)
	if err != nil {
		return nil, err
	}
	categories, err := s.articles.ListCategories()
	if err != nil {
		return nil, err
	}
	tags, err := s.articles.ListTags()
	if err != nil {
		return nil, err
	}
	return &AllNewsPage{
		Articles:   filtered,
		Digest:     digest,
		Categories: categories,
		Tags:       tags,
		Query:      query,
	}, nil
}

// Search — поиск по заголовку и тексту. Пустой запрос даёт пустую
// страницу, а не полную выборку.
func (s *NewsService) Search(query string, page int) (listing.Page[*models.Article], error) {
	if query == "" {
		return listing.Paginate([]*models.Article{}, page, searchPageSize), nil
	}
	results, err := s.articles.Search(query)
	if err != nil {
		return listing.Page[*models.Article]{}, err
	}
	return listing.Paginate(results, page, searchPageSize), nil
}

// CategoryPage — лента рубрики.
type CategoryPage struct {
	Category *models.Category              `json:"category"`
	Page     listing.Page[*models.Article] `json:"page"`
}

func (s *NewsService) Category(slug string, page int) (*CategoryPage, error) {
	category, err := s.articles.GetCategoryBySlug(slug)
	if err != nil {
		return nil, notFoundOr(err, "category")
	}
	articles, err := s.articles.ListByCategorySlug(slug)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{
		Category: category,
		Page:     listing.Paginate(articles, page, tagPageSize),
	}, nil
}

// TagPage — лента тега.
type TagPage struct {
	Tag  *models.Tag                   `json:"tag"`
	Page listing.Page[*models.Article] `json:"page"`
}

func (s *NewsService) Tag(slug string, page int) (*TagPage, error) {
	tag, err := s.articles.GetTagBySlug(slug)
	if err != nil {
		return nil, notFoundOr(err, "tag")
	}
	articles, err := s.articles.ListByTagSlug(slug)
	if err != nil {
		return nil, err
	}
	return &TagPage{
		Tag:  tag,
		Page: listing.Paginate(articles, page, tagPageSize),
	}, nil
}

// Author — лента материалов автора, по 12 на страницу.
func (s *NewsService) Author(authorID int64, page int) (listing.Page[*models.Article], error) {
	articles, err := s.articles.ListByAuthor(authorID, 0)
	if err != nil {
		return listing.Page[*models.Article]{}, err
	}
	return listing.Paginate(articles, page, authorPageSize), nil
}

// Detail — карточка новости со счётчиком: сначала атомарный инкремент,
// затем чтение. Несуществующий alias даёт ErrNotFound.
func (s *NewsService) Detail(alias string) (*models.Article, error) {
	if err := s.articles.IncrementViews(alias); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.articles.GetByAlias(alias)
}
