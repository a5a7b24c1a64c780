package models

import "time"

// Тип новости: "P" — опубликована на портале, "D" — дайджест.
const (
	ArticleTypePortal = "P"
	ArticleTypeDigest = "D"
)

type Article struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Alias         string    `json:"alias"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	AuthorID      *int64    `json:"author_id,omitempty"`
	Pseudonym     string    `json:"pseudonym,omitempty"`
	PublishedDate time.Time `json:"published_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ViewCount     int       `json:"view_count"`
	Type          string    `json:"article_type"`
	Status        bool      `json:"article_status"`
	IsFeatured    bool      `json:"is_featured"`
	IsPopular     bool      `json:"is_popular"`
	Categories    []string  `json:"categories"` // слаги категорий
	Tags          []string  `json:"tags"`       // слаги тегов
}

// Category — рубрика новостей (динамический справочник, не закрытый enum).
type Category struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	SeoText string `json:"seo_text"`
	Desc    string `json:"desc"`
	Level   int    `json:"level"`
}

type Tag struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SeoTag      string `json:"seo_tag"`
	IndexLevel  int    `json:"index_level"`
}
