package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tbexpert/internal/listing"
	"tbexpert/internal/models"
	"tbexpert/internal/pdf"
	"tbexpert/internal/services"
)

type CatalogHandler struct {
	catalog  *services.CatalogService
	exporter pdf.Exporter
}

func NewCatalogHandler(catalog *services.CatalogService, exporter pdf.Exporter) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, exporter: exporter}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) respondDetail(c *gin.Context, what string, v any, err error) {
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Не найдено"})
			return
		}
		log.Printf("[catalog][%s] err=%v", what, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить запись"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Образцы документов
// @Description  Подборка по выбранной категории с поиском, сортировкой и лимитом
// @Tags         Catalog
// @Produce      json
// @Param        category  query  string  false  "Категория"
// @Param        q         query  string  false  "Поиск по названию и описанию"
// @Param        sort      query  string  false  "date_asc | date_desc"
// @Param        limit     query  string  false  "Число либо all"
// @Success      200  {object}  map[string]interface{}
// @Router       /documents [get]
func (h *CatalogHandler) Documents(c *gin.Context) {
	p := listing.ParseParams(c.Request.URL.Query())
	page, side, err := h.catalog.Documents(p)
	if err != nil {
		log.Printf("[catalog][documents] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить документы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents":         page.Items,
		"grouped_documents": page.Grouped,
		"categories":        page.Categories,
		"selected_category": page.Selected,
		"side_documents":    side,
	})
}

// @Summary      НПА по охране труда
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /laws [get]
func (h *CatalogHandler) Laws(c *gin.Context) {
	page, err := h.catalog.Laws(listing.ParseParams(c.Request.URL.Query()))
	if err != nil {
		log.Printf("[catalog][laws] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить НПА"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"laws":             page.Items,
		"categorized_laws": page.Grouped,
		"categories":       page.Categories,
	})
}

// @Summary      Чек-листы
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /checklists [get]
func (h *CatalogHandler) Checklists(c *gin.Context) {
	page, err := h.catalog.Checklists(listing.ParseParams(c.Request.URL.Query()))
	if err != nil {
		log.Printf("[catalog][checklists] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить чек-листы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"checklists":         page.Items,
		"grouped_checklists": page.Grouped,
		"categories":         page.Categories,
	})
}

// @Summary      Инструктажи
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /instructions [get]
func (h *CatalogHandler) Instructions(c *gin.Context) {
	page, err := h.catalog.Instructions(listing.ParseParams(c.Request.URL.Query()))
	if err != nil {
		log.Printf("[catalog][instructions] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить инструктажи"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"instructions":         page.Items,
		"grouped_instructions": page.Grouped,
		"categories":           page.Categories,
	})
}

// @Summary      Вопросы и ответы
// @Tags         Catalog
// @Produce      json
// @Param        sort  query  string  false  "popular — сначала отмеченные и просматриваемые"
// @Success      200  {object}  map[string]interface{}
// @Router       /faqs [get]
func (h *CatalogHandler) FAQs(c *gin.Context) {
	page, err := h.catalog.FAQs(listing.ParseParams(c.Request.URL.Query()))
	if err != nil {
		log.Printf("[catalog][faqs] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить вопросы"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"faqs":         page.Items,
		"grouped_faqs": page.Grouped,
		"categories":   page.Categories,
	})
}

// @Summary      Вебинары
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /webinars [get]
func (h *CatalogHandler) Webinars(c *gin.Context) {
	page, special, err := h.catalog.Webinars(listing.ParseParams(c.Request.URL.Query()))
	if err != nil {
		log.Printf("[catalog][webinars] err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить вебинары"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"webinars":             page.Items,
		"categorized_webinars": page.Grouped,
		"status":               page.Categories,
		"special":              special,
	})
}

// ===== карточки (каждое чтение учитывается счётчиком просмотров) =====

// @Summary      Карточка документа
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID документа"
// @Success      200  {object}  models.Document
// @Failure      404  {object}  map[string]string
// @Router       /documents/{id} [get]
func (h *CatalogHandler) Document(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	doc, err := h.catalog.DocumentByID(id)
	h.respondDetail(c, "document", doc, err)
}

// @Summary      Карточка НПА
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID записи"
// @Success      200  {object}  models.Law
// @Failure      404  {object}  map[string]string
// @Router       /laws/{id} [get]
func (h *CatalogHandler) Law(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	law, err := h.catalog.LawByID(id)
	h.respondDetail(c, "law", law, err)
}

// @Summary      Карточка чек-листа
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID чек-листа"
// @Success      200  {object}  models.Checklist
// @Failure      404  {object}  map[string]string
// @Router       /checklists/{id} [get]
func (h *CatalogHandler) Checklist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cl, err := h.catalog.ChecklistByID(id)
	h.respondDetail(c, "checklist", cl, err)
}

// @Summary      Выгрузка чек-листа в PDF
// @Tags         Catalog
// @Produce      application/pdf
// @Param        id  path  int  true  "ID чек-листа"
// @Success      200  {file}  file
// @Failure      404  {object}  map[string]string
// @Router       /checklists/{id}/pdf [get]
func (h *CatalogHandler) ChecklistPDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cl, err := h.catalog.ChecklistByID(id)
	if err != nil {
		h.respondDetail(c, "checklist_pdf", nil, err)
		return
	}

	label := cl.Category
	for _, cat := range models.ChecklistCategories {
		if cat.Key == cl.Category {
			label = cat.Label
			break
		}
	}

	rel, err := h.exporter.ExportChecklist(cl, label)
	if err != nil {
		log.Printf("[catalog][checklist_pdf] id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сформировать PDF"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"file": rel})
}

// @Summary      Карточка инструктажа
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID инструктажа"
// @Success      200  {object}  models.Instruction
// @Failure      404  {object}  map[string]string
// @Router       /instructions/{id} [get]
func (h *CatalogHandler) Instruction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ins, err := h.catalog.InstructionByID(id)
	h.respondDetail(c, "instruction", ins, err)
}

// @Summary      Карточка вопроса-ответа
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID записи"
// @Success      200  {object}  models.FAQ
// @Failure      404  {object}  map[string]string
// @Router       /faqs/{id} [get]
func (h *CatalogHandler) FAQ(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	faq, err := h.catalog.FAQByID(id)
	h.respondDetail(c, "faq", faq, err)
}

// @Summary      Карточка вебинара
// @Tags         Catalog
// @Produce      json
// @Param        id  path  int  true  "ID вебинара"
// @Success      200  {object}  models.Webinar
// @Failure      404  {object}  map[string]string
// @Router       /webinars/{id} [get]
func (h *CatalogHandler) Webinar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	w, err := h.catalog.WebinarByID(id)
	h.respondDetail(c, "webinar", w, err)
}
