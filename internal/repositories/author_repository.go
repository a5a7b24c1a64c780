package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type AuthorRepository struct {
	DB *sql.DB
}

func NewAuthorRepository(db *sql.DB) *AuthorRepository {
	return &AuthorRepository{DB: db}
}

func (r *AuthorRepository) List() ([]*models.Author, error) {
	rows, err := r.DB.Query(`SELECT id, full_name, COALESCE(job_title,''), COALESCE(avatar,'') FROM authors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var res []*models.Author
	for rows.Next() {
		a := &models.Author{}
		if err := rows.Scan(&a.ID, &a.FullName, &a.JobTitle, &a.Avatar); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *AuthorRepository) GetByID(id int64) (*models.Author, error) {
	a := &models.Author{}
	err := r.DB.QueryRow(
		`SELECT id, full_name, COALESCE(job_title,''), COALESCE(avatar,'') FROM authors WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.FullName, &a.JobTitle, &a.Avatar)
	if err != nil {
		return nil, err
	}
	return a, nil
}
