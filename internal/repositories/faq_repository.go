package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type FAQRepository struct {
	DB *sql.DB
}

func NewFAQRepository(db *sql.DB) *FAQRepository {
	return &FAQRepository{DB: db}
}

const faqSelect = `
	SELECT id, COALESCE(question,''), COALESCE(answer,''), COALESCE(author,''),
	       COALESCE(author_profession,''), COALESCE(category,''),
	       view_count, is_popular, created_at, updated_at
	FROM faqs
`

func scanFAQs(rows *sql.Rows) ([]*models.FAQ, error) {
	var res []*models.FAQ
	for rows.Next() {
		f := &models.FAQ{}
		if err := rows.Scan(
			&f.ID, &f.Question, &f.Answer, &f.Author,
			&f.AuthorProfession, &f.Category,
			&f.ViewCount, &f.IsPopular, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan faq: %w", err)
		}
		res = append(res, f)
	}
	return res, rows.Err()
}

func (r *FAQRepository) List() ([]*models.FAQ, error) {
	rows, err := r.DB.Query(faqSelect + ` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()
	return scanFAQs(rows)
}

func (r *FAQRepository) GetByID(id int64) (*models.FAQ, error) {
	rows, err := r.DB.Query(faqSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get faq: %w", err)
	}
	defer rows.Close()
	items, err := scanFAQs(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

func (r *FAQRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE faqs SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment faq views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
