package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tbexpert/internal/listing"
	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
)

const (
	forumArticlesLimit  = 10
	forumDocumentsLimit = 3
	forumChecklistsCap  = 5
)

// ForumPage — страница форума: список экспертов, контент выбранного
// эксперта и общий чат.
type ForumPage struct {
	Authors        []*models.Author `json:"authors"`
	SelectedAuthor *models.Author   `json:"selected_author,omitempty"`

	Articles  []*models.Article  `json:"articles"`
	Documents []*models.Document `json:"documents"`

	ChecklistCategories []models.ContentCategory       `json:"checklists_categories"`
	GroupedChecklists   map[string][]*models.Checklist `json:"grouped_checklists"`

	Messages []*models.Message `json:"chat_messages"`
}

type ForumService struct {
	authors    *repositories.AuthorRepository
	articles   *repositories.ArticleRepository
	documents  *repositories.DocumentRepository
	checklists *repositories.ChecklistRepository
	forum      *repositories.ForumRepository
	notifier   *TelegramNotifier
}

func NewForumService(
	authors *repositories.AuthorRepository,
	articles *repositories.ArticleRepository,
	documents *repositories.DocumentRepository,
	checklists *repositories.ChecklistRepository,
	forum *repositories.ForumRepository,
	notifier *TelegramNotifier,
) *ForumService {
	return &ForumService{
		authors:    authors,
		articles:   articles,
		documents:  documents,
		checklists: checklists,
		forum:      forum,
		notifier:   notifier,
	}
}

// Page — страница форума. Неизвестный или пустой authorID даёт первого
// эксперта из списка.
func (s *ForumService) Page(authorID int64) (*ForumPage, error) {
	authors, err := s.authors.List()
	if err != nil {
		return nil, err
	}

	var selected *models.Author
	if authorID != 0 {
		a, err := s.authors.GetByID(authorID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("forum author: %w", err)
		}
		selected = a
	}
	if selected == nil && len(authors) > 0 {
		selected = authors[0]
	}

	page := &ForumPage{
		Authors:             authors,
		SelectedAuthor:      selected,
		ChecklistCategories: models.ChecklistCategories,
		GroupedChecklists:   map[string][]*models.Checklist{},
	}

	if selected != nil {
		if page.Articles, err = s.articles.ListByAuthor(selected.ID, forumArticlesLimit); err != nil {
			return nil, err
		}
		if page.Documents, err = s.documents.ListByAuthor(selected.ID, forumDocumentsLimit); err != nil {
			return nil, err
		}

		pinned, err := s.checklists.ListPinnedByAuthor(selected.ID)
		if err != nil {
			return nil, err
		}
		caps := make(map[string]int, len(models.ChecklistCategories))
		for _, c := range models.ChecklistCategories {
			caps[c.Key] = forumChecklistsCap
		}
		page.GroupedChecklists = listing.Grouped(pinned, models.ChecklistCategories, checklistMeta,
			listing.Params{Sort: listing.SortDateDesc}, caps)
	}

	if page.Messages, err = s.forum.ListMessages(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *ForumService) PostMessage(userID int, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}
	return s.forum.CreateMessage(userID, text)
}

// AskQuestion — вопрос эксперту; админы получают уведомление в telegram.
func (s *ForumService) AskQuestion(userID int, userName, text string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("question text is required")
	}
	q, err := s.forum.CreateQuestion(userID, text)
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyNewQuestion(userName, text)
	return q, nil
}

// DeleteQuestion — удалить можно только собственный вопрос.
func (s *ForumService) DeleteQuestion(id int64, userID int) error {
	if err := s.forum.DeleteQuestion(id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
