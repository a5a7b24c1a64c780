package services

import (
	"database/sql"
	"errors"
	"fmt"

	"tbexpert/internal/listing"
	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
)

var ErrNotFound = errors.New("не найдено")

// Доступ к полям каждого типа контента для общего механизма выборки.
var (
	documentMeta = listing.Meta[*models.Document]{
		Category: func(d *models.Document) string { return d.Category },
		Search:   func(d *models.Document) (string, string) { return d.Title, d.Description },
		DateOf:   func(d *models.Document) int64 { return d.ValidFrom.Unix() },
		Views:    func(d *models.Document) int { return d.Views },
	}

	lawMeta = listing.Meta[*models.Law]{
		Category: func(l *models.Law) string { return l.Category },
		Search:   func(l *models.Law) (string, string) { return l.Title, l.Description },
		DateOf:   func(l *models.Law) int64 { return l.ValidFrom.Unix() },
		Views:    func(l *models.Law) int { return l.Views },
	}

	checklistMeta = listing.Meta[*models.Checklist]{
		Category: func(c *models.Checklist) string { return c.Category },
		Search:   func(c *models.Checklist) (string, string) { return c.Title, c.UseCase },
		DateOf:   func(c *models.Checklist) int64 { return c.ValidFrom.Unix() },
		Views:    func(c *models.Checklist) int { return c.Views },
	}

	instructionMeta = listing.Meta[*models.Instruction]{
		Category: func(i *models.Instruction) string { return i.Category },
		Search:   func(i *models.Instruction) (string, string) { return i.Title, i.Description },
		DateOf:   func(i *models.Instruction) int64 { return i.CreatedDate.Unix() },
		Views:    func(i *models.Instruction) int { return i.ViewCount },
		Popular:  func(i *models.Instruction) bool { return i.IsPopular },
	}

	faqMeta = listing.Meta[*models.FAQ]{
		Category: func(f *models.FAQ) string { return f.Category },
		Search:   func(f *models.FAQ) (string, string) { return f.Question, f.Answer },
		DateOf:   func(f *models.FAQ) int64 { return f.CreatedAt.Unix() },
		Views:    func(f *models.FAQ) int { return f.ViewCount },
		Popular:  func(f *models.FAQ) bool { return f.IsPopular },
	}

	// вебинары группируются по статусу, а не по тематике
	webinarMeta = listing.Meta[*models.Webinar]{
		Category: func(w *models.Webinar) string { return w.Status },
		Search:   func(w *models.Webinar) (string, string) { return w.Title, w.Description },
		DateOf:   func(w *models.Webinar) int64 { return w.Date.Unix() },
		Views:    func(w *models.Webinar) int { return w.ViewCount },
	}
)

// GroupedPage — общий ответ страниц каталога: полная выборка, подборки
// по категориям и само перечисление категорий.
type GroupedPage[T any] struct {
	Items      []T                      `json:"items"`
	Grouped    map[string][]T           `json:"grouped"`
	Categories []models.ContentCategory `json:"categories"`
	Selected   string                   `json:"selected_category,omitempty"`
}

// CatalogService — страницы справочных разделов: документы, НПА, чек-листы,
// инструктажи, вопросы-ответы, вебинары.
type CatalogService struct {
	documents    *repositories.DocumentRepository
	laws         *repositories.LawRepository
	checklists   *repositories.ChecklistRepository
	instructions *repositories.InstructionRepository
	faqs         *repositories.FAQRepository
	webinars     *repositories.WebinarRepository
}

func NewCatalogService(
	documents *repositories.DocumentRepository,
	laws *repositories.LawRepository,
	checklists *repositories.ChecklistRepository,
	instructions *repositories.InstructionRepository,
	faqs *repositories.FAQRepository,
	webinars *repositories.WebinarRepository,
) *CatalogService {
	return &CatalogService{
		documents:    documents,
		laws:         laws,
		checklists:   checklists,
		instructions: instructions,
		faqs:         faqs,
		webinars:     webinars,
	}
}

// Documents — раздел образцов документов. Без явной категории показывается
// первая из перечисления, без явной сортировки — по просмотрам.
// Сайдбар содержит все документы в обратном порядке дат ввода в действие.
func (s *CatalogService) Documents(p listing.Params) (*GroupedPage[*models.Document], []*models.Document, error) {
	all, err := s.documents.List()
	if err != nil {
		return nil, nil, err
	}
	page, side := buildDocumentsPage(all, p)
	return page, side, nil
}

// buildDocumentsPage — чистая сборка страницы документов поверх уже
// прочитанной выборки.
func buildDocumentsPage(all []*models.Document, p listing.Params) (*GroupedPage[*models.Document], []*models.Document) {
	if p.Category == "" && len(models.DocumentCategories) > 0 {
		p.Category = models.DocumentCategories[0].Key
	}
	if p.Sort == listing.SortDefault {
		p.Sort = listing.SortPopular
	}

	side := listing.Select(all, documentMeta, listing.Params{Sort: listing.SortDateDesc})
	items := listing.Select(all, documentMeta, p)

	// подборка выбранной категории разделяет лимит с плоской выборкой
	grouped := map[string][]*models.Document{}
	if len(items) > 0 {
		for _, cat := range models.DocumentCategories {
			if cat.Key == p.Category {
				grouped[cat.Label] = items
				break
			}
		}
	}

	return &GroupedPage[*models.Document]{
		Items:      items,
		Grouped:    grouped,
		Categories: models.DocumentCategories,
		Selected:   p.Category,
	}, side
}

// Laws — раздел НПА: полная выборка плюс подборки по всем категориям.
func (s *CatalogService) Laws(p listing.Params) (*GroupedPage[*models.Law], error) {
	all, err := s.laws.List()
	if err != nil {
		return nil, err
	}
	return &GroupedPage[*models.Law]{
		Items:      listing.Select(all, lawMeta, p),
		Grouped:    listing.Grouped(all, models.LawCategories, lawMeta, p, nil),
		Categories: models.LawCategories,
		Selected:   p.Category,
	}, nil
}

func (s *CatalogService) Checklists(p listing.Params) (*GroupedPage[*models.Checklist], error) {
	all, err := s.checklists.List()
	if err != nil {
		return nil, err
	}
	return &GroupedPage[*models.Checklist]{
		Items:      listing.Select(all, checklistMeta, p),
		Grouped:    listing.Grouped(all, models.ChecklistCategories, checklistMeta, p, nil),
		Categories: models.ChecklistCategories,
		Selected:   p.Category,
	}, nil
}

func (s *CatalogService) Instructions(p listing.Params) (*GroupedPage[*models.Instruction], error) {
	all, err := s.instructions.List()
	if err != nil {
		return nil, err
	}
	return &GroupedPage[*models.Instruction]{
		Items:      listing.Select(all, instructionMeta, p),
		Grouped:    listing.Grouped(all, models.InstructionCategories, instructionMeta, p, nil),
		Categories: models.InstructionCategories,
		Selected:   p.Category,
	}, nil
}

func (s *CatalogService) FAQs(p listing.Params) (*GroupedPage[*models.FAQ], error) {
	all, err := s.faqs.List()
	if err != nil {
		return nil, err
	}
	return &GroupedPage[*models.FAQ]{
		Items:      listing.Select(all, faqMeta, p),
		Grouped:    listing.Grouped(all, models.FAQCategories, faqMeta, p, nil),
		Categories: models.FAQCategories,
		Selected:   p.Category,
	}, nil
}

// Webinars — подборки "предстоящие" и "прошедшие" плюс спецпроекты.
func (s *CatalogService) Webinars(p listing.Params) (*GroupedPage[*models.Webinar], []*models.Webinar, error) {
	all, err := s.webinars.List()
	if err != nil {
		return nil, nil, err
	}

	var special []*models.Webinar
	for _, w := range all {
		if w.Special {
			special = append(special, w)
		}
	}

	return &GroupedPage[*models.Webinar]{
		Items:      listing.Select(all, webinarMeta, p),
		Grouped:    listing.Grouped(all, models.WebinarStatuses, webinarMeta, p, nil),
		Categories: models.WebinarStatuses,
		Selected:   p.Category,
	}, special, nil
}

// LatestDocuments — короткая подборка для главной.
func (s *CatalogService) LatestDocuments(limit int) ([]*models.Document, error) {
	all, err := s.documents.List()
	if err != nil {
		return nil, err
	}
	return listing.Select(all, documentMeta, listing.Params{Limit: limit}), nil
}

func (s *CatalogService) LatestInstructions(limit int) ([]*models.Instruction, error) {
	all, err := s.instructions.List()
	if err != nil {
		return nil, err
	}
	return listing.Select(all, instructionMeta, listing.Params{Limit: limit}), nil
}

func (s *CatalogService) AllLaws() ([]*models.Law, error) {
	return s.laws.List()
}

// ===== карточки с учётом просмотра =====
// Сначала атомарный инкремент счётчика, затем чтение. Отсутствующая
// запись даёт ErrNotFound.

func (s *CatalogService) DocumentByID(id int64) (*models.Document, error) {
	if err := s.documents.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "document")
	}
	return s.documents.GetByID(id)
}

func (s *CatalogService) LawByID(id int64) (*models.Law, error) {
	if err := s.laws.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "law")
	}
	return s.laws.GetByID(id)
}

func (s *CatalogService) ChecklistByID(id int64) (*models.Checklist, error) {
	if err := s.checklists.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "checklist")
	}
	return s.checklists.GetByID(id)
}

func (s *CatalogService) InstructionByID(id int64) (*models.Instruction, error) {
	if err := s.instructions.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "instruction")
	}
	return s.instructions.GetByID(id)
}

func (s *CatalogService) FAQByID(id int64) (*models.FAQ, error) {
	if err := s.faqs.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "faq")
	}
	return s.faqs.GetByID(id)
}

func (s *CatalogService) WebinarByID(id int64) (*models.Webinar, error) {
	if err := s.webinars.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "webinar")
	}
	return s.webinars.GetByID(id)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", what, err)
}
