package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type WebinarRepository struct {
	DB *sql.DB
}

func NewWebinarRepository(db *sql.DB) *WebinarRepository {
	return &WebinarRepository{DB: db}
}

const webinarSelect = `
	SELECT id, title, COALESCE(description,''), status, special, date,
	       COALESCE(speaker,''), COALESCE(speaker_job_title,''), COALESCE(link,''),
	       view_count, created_at
	FROM webinars
`

func scanWebinars(rows *sql.Rows) ([]*models.Webinar, error) {
	var res []*models.Webinar
	for rows.Next() {
		w := &models.Webinar{}
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Description, &w.Status, &w.Special, &w.Date,
			&w.Speaker, &w.SpeakerJobTitle, &w.Link,
			&w.ViewCount, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan webinar: %w", err)
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

func (r *WebinarRepository) List() ([]*models.Webinar, error) {
	rows, err := r.DB.Query(webinarSelect + ` ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list webinars: %w", err)
	}
	defer rows.Close()
	return scanWebinars(rows)
}

func (r *WebinarRepository) GetByID(id int64) (*models.Webinar, error) {
	rows, err := r.DB.Query(webinarSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get webinar: %w", err)
	}
	defer rows.Close()
	items, err := scanWebinars(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

func (r *WebinarRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE webinars SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment webinar views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
