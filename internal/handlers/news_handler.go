package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tbexpert/internal/models"
	"tbexpert/internal/services"
)

type NewsHandler struct {
	news     *services.NewsService
	catalog  *services.CatalogService
	calendar *services.CalendarService
	sitemap  *services.SitemapService
}

func NewNewsHandler(
	news *services.NewsService,
	catalog *services.CatalogService,
	calendar *services.CalendarService,
	sitemap *services.SitemapService,
) *NewsHandler {
	return &NewsHandler{news: news, catalog: catalog, calendar: calendar, sitemap: sitemap}
}

// calendarFromQuery — общие параметры виджета календаря.
func (h *NewsHandler) calendarFromQuery(c *gin.Context) (*services.CalendarMonth, error) {
	year, _ := strconv.Atoi(c.Query("calendar_year"))
	month, _ := strconv.Atoi(c.Query("calendar_month"))
	return h.calendar.Month(year, month, c.Query("event_date"), time.Now())
}

func pageNumber(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// @Summary      Главная страница
// @Description  Статьи, рубрики, теги, календарь мероприятий и короткие подборки разделов
// @Tags         News
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       / [get]
func (h *NewsHandler) Index(c *gin.Context) {
	page, err := h.news.Index()
	if err != nil {
		log.Printf("[news][index] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить главную"})
		return
	}

	calendar, err := h.calendarFromQuery(c)
	if err != nil {
		log.Printf("[news][index] calendar err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить календарь"})
		return
	}

	instructions, err := h.catalog.LatestInstructions(3)
	if err != nil {
		log.Printf("[news][index] instructions err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить главную"})
		return
	}
	documents, err := h.catalog.LatestDocuments(3)
	if err != nil {
		log.Printf("[news][index] documents err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить главную"})
		return
	}
	laws, err := h.catalog.AllLaws()
	if err != nil {
		log.Printf("[news][index] laws err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить главную"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":          page.Articles,
		"categories":        page.Categories,
		"tags":              page.Tags,
		"laws":              laws,
		"instructions":      instructions,
		"documents":         documents,
		"calendar":          calendar,
		"selected_category": c.Query("category"),
	})
}

// @Summary      Все новости
// @Tags         News
// @Produce      json
// @Param        q  query  string  false  "Поиск по заголовку и описанию"
// @Success      200  {object}  map[string]interface{}
// @Router       /news [get]
func (h *NewsHandler) AllNews(c *gin.Context) {
	page, err := h.news.AllNews(c.Query("q"))
	if err != nil {
		log.Printf("[news][all] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить новости"})
		return
	}

	calendar, err := h.calendarFromQuery(c)
	if err != nil {
		log.Printf("[news][all] calendar err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить календарь"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":        page.Articles,
		"digest_articles": page.Digest,
		"categories":      page.Categories,
		"tags":            page.Tags,
		"query":           page.Query,
		"calendar":        calendar,
	})
}

// @Summary      Карточка новости
// @Description  Читает материал и атомарно увеличивает счётчик просмотров
// @Tags         News
// @Produce      json
// @Param        alias  path  string  true  "Алиас материала"
// @Success      200  {object}  models.Article
// @Failure      404  {object}  map[string]string
// @Router       /news/{alias} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	article, err := h.news.Detail(c.Param("alias"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Материал не найден"})
			return
		}
		log.Printf("[news][detail] alias=%q err=%v", c.Param("alias"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить материал"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// @Summary      Поиск по новостям
// @Tags         News
// @Produce      json
// @Param        search  query  string  false  "Поисковый запрос"
// @Param        page    query  int     false  "Номер страницы"
// @Success      200  {object}  map[string]interface{}
// @Router       /search_results [get]
func (h *NewsHandler) Search(c *gin.Context) {
	query := c.Query("search")
	page, err := h.news.Search(query, pageNumber(c))
	if err != nil {
		log.Printf("[news][search] q=%q err=%v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Поиск временно недоступен"})
		return
	}

	popular, err := h.news.Popular(c.Request.Context(), time.Now(), 7)
	if err != nil {
		log.Printf("[news][search] popular err=%v", err)
		popular = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"page":         page,
		"query":        query,
		"popular_news": popular,
	})
}

// сайдбары рубрик, тегов и статических страниц
func (h *NewsHandler) sidebars(c *gin.Context) (popular, society []*models.Article) {
	p, err := h.news.Popular(c.Request.Context(), time.Now(), 6)
	if err != nil {
		log.Printf("[news][sidebar] popular err=%v", err)
	}
	s, err := h.news.SocietyNews()
	if err != nil {
		log.Printf("[news][sidebar] society err=%v", err)
	}
	return p, s
}

// @Summary      Лента рубрики
// @Tags         News
// @Produce      json
// @Param        slug  path   string  true   "Слаг рубрики"
// @Param        page  query  int     false  "Номер страницы"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /category/{slug} [get]
func (h *NewsHandler) Category(c *gin.Context) {
	page, err := h.news.Category(c.Param("slug"), pageNumber(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Рубрика не найдена"})
			return
		}
		log.Printf("[news][category] slug=%q err=%v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить рубрику"})
		return
	}

	popular, society := h.sidebars(c)
	c.JSON(http.StatusOK, gin.H{
		"category":      page.Category,
		"page":          page.Page,
		"popular_news":  popular,
		"category_news": society,
	})
}

// @Summary      Лента тега
// @Tags         News
// @Produce      json
// @Param        slug  path   string  true   "Слаг тега"
// @Param        page  query  int     false  "Номер страницы"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /tag/{slug} [get]
func (h *NewsHandler) Tag(c *gin.Context) {
	page, err := h.news.Tag(c.Param("slug"), pageNumber(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тег не найден"})
			return
		}
		log.Printf("[news][tag] slug=%q err=%v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить тег"})
		return
	}

	popular, society := h.sidebars(c)
	c.JSON(http.StatusOK, gin.H{
		"tag":           page.Tag,
		"page":          page.Page,
		"popular_news":  popular,
		"category_news": society,
	})
}

// @Summary      Материалы автора
// @Tags         News
// @Produce      json
// @Param        uid   path   int  true   "ID автора"
// @Param        page  query  int  false  "Номер страницы"
// @Success      200  {object}  map[string]interface{}
// @Router       /author/{uid} [get]
func (h *NewsHandler) Author(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID автора"})
		return
	}

	page, err := h.news.Author(uid, pageNumber(c))
	if err != nil {
		log.Printf("[news][author] uid=%d err=%v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить материалы автора"})
		return
	}

	popular, _ := h.news.Popular(c.Request.Context(), time.Now(), 6)
	c.JSON(http.StatusOK, gin.H{
		"uid":          uid,
		"page":         page,
		"popular_news": popular,
	})
}

// @Summary      Карта сайта
// @Tags         News
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func (h *NewsHandler) Sitemap(c *gin.Context) {
	body, err := h.sitemap.Build()
	if err != nil {
		log.Printf("[news][sitemap] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось собрать карту сайта"})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
