package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tbexpert/internal/models"
)

type LawRepository struct {
	DB *sql.DB
}

func NewLawRepository(db *sql.DB) *LawRepository {
	return &LawRepository{DB: db}
}

const lawSelect = `
	SELECT l.id, l.title, COALESCE(l.description,''), l.category, COALESCE(l.topics,''),
	       COALESCE(l.number,''), COALESCE(l.file_url,''), COALESCE(l.file,''),
	       l.valid_from, l.valid_to, l.views, l.created_date,
	       COALESCE(array_agg(t.slug) FILTER (WHERE t.slug IS NOT NULL), '{}')
	FROM laws l
	LEFT JOIN law_tags lt ON lt.law_id = l.id
	LEFT JOIN tags t ON t.id = lt.tag_id
`

func scanLaws(rows *sql.Rows) ([]*models.Law, error) {
	var res []*models.Law
	for rows.Next() {
		l := &models.Law{}
		var tags pq.StringArray
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.Category, &l.Topics,
			&l.Number, &l.FileURL, &l.FilePath,
			&l.ValidFrom, &l.ValidTo, &l.Views, &l.CreatedAt,
			&tags,
		); err != nil {
			return nil, fmt.Errorf("scan law: %w", err)
		}
		l.Tags = tags
		res = append(res, l)
	}
	return res, rows.Err()
}

func (r *LawRepository) List() ([]*models.Law, error) {
	rows, err := r.DB.Query(lawSelect + ` GROUP BY l.id ORDER BY l.created_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list laws: %w", err)
	}
	defer rows.Close()
	return scanLaws(rows)
}

func (r *LawRepository) GetByID(id int64) (*models.Law, error) {
	rows, err := r.DB.Query(lawSelect+` WHERE l.id = $1 GROUP BY l.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get law: %w", err)
	}
	defer rows.Close()
	laws, err := scanLaws(rows)
	if err != nil {
		return nil, err
	}
	if len(laws) == 0 {
		return nil, sql.ErrNoRows
	}
	return laws[0], nil
}

func (r *LawRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE laws SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment law views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
