package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

const documentSelect = `
	SELECT id, title, COALESCE(description,''), category, COALESCE(topics,''),
	       COALESCE(file_url,''), COALESCE(file,''), valid_from, valid_to,
	       views, created_date, author_id
	FROM documents
`

func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var res []*models.Document
	for rows.Next() {
		d := &models.Document{}
		var authorID sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Category, &d.Topics,
			&d.FileURL, &d.FilePath, &d.ValidFrom, &d.ValidTo,
			&d.Views, &d.CreatedAt, &authorID,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if authorID.Valid {
			id := authorID.Int64
			d.AuthorID = &id
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *DocumentRepository) List() ([]*models.Document, error) {
	rows, err := r.DB.Query(documentSelect + ` ORDER BY created_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func (r *DocumentRepository) GetByID(id int64) (*models.Document, error) {
	rows, err := r.DB.Query(documentSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer rows.Close()
	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, sql.ErrNoRows
	}
	return docs[0], nil
}

func (r *DocumentRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE documents SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment document views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *DocumentRepository) ListByAuthor(authorID int64, limit int) ([]*models.Document, error) {
	rows, err := r.DB.Query(documentSelect+` WHERE author_id = $1 ORDER BY created_date DESC LIMIT $2`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list documents by author: %w", err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}
