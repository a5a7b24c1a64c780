package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type ChecklistRepository struct {
	DB *sql.DB
}

func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{DB: db}
}

const checklistSelect = `
	SELECT id, title, COALESCE(use_case,''), COALESCE(category,''),
	       COALESCE(file_url,''), COALESCE(file,''), valid_from, views,
	       pinned_to_main, author_id
	FROM checklists
`

func scanChecklists(rows *sql.Rows) ([]*models.Checklist, error) {
	var res []*models.Checklist
	for rows.Next() {
		c := &models.Checklist{}
		var authorID sql.NullInt64
		if err := rows.Scan(
			&c.ID, &c.Title, &c.UseCase, &c.Category,
			&c.FileURL, &c.FilePath, &c.ValidFrom, &c.Views,
			&c.PinnedToMain, &authorID,
		); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		if authorID.Valid {
			id := authorID.Int64
			c.AuthorID = &id
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *ChecklistRepository) List() ([]*models.Checklist, error) {
	rows, err := r.DB.Query(checklistSelect + ` ORDER BY valid_from DESC`)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()
	return scanChecklists(rows)
}

func (r *ChecklistRepository) GetByID(id int64) (*models.Checklist, error) {
	rows, err := r.DB.Query(checklistSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get checklist: %w", err)
	}
	defer rows.Close()
	items, err := scanChecklists(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

func (r *ChecklistRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE checklists SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment checklist views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListPinnedByAuthor — закреплённые чек-листы автора для страницы форума.
func (r *ChecklistRepository) ListPinnedByAuthor(authorID int64) ([]*models.Checklist, error) {
	rows, err := r.DB.Query(checklistSelect+` WHERE pinned_to_main = TRUE AND author_id = $1 ORDER BY valid_from DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list pinned checklists: %w", err)
	}
	defer rows.Close()
	return scanChecklists(rows)
}
