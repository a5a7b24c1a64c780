package services

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"tbexpert/internal/repositories"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapService — sitemap.xml по опубликованным новостям.
type SitemapService struct {
	articles *repositories.ArticleRepository
	baseURL  string
}

func NewSitemapService(articles *repositories.ArticleRepository, baseURL string) *SitemapService {
	return &SitemapService{
		articles: articles,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *SitemapService) Build() ([]byte, error) {
	articles, err := s.articles.ListPublished()
	if err != nil {
		return nil, err
	}

	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, a := range articles {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     fmt.Sprintf("%s/news/%s/", s.baseURL, a.Alias),
			LastMod: a.UpdatedAt.Format(time.DateOnly),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sitemap marshal: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
