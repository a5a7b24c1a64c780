package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"tbexpert/internal/models"
)

type EmailVerificationRepository interface {
	// Replace — удаляет прошлые коды по email и создаёт новый одной
	// транзакцией, так что "живая" запись на email всегда одна.
	Replace(email, code string, createdAt time.Time) (int64, error)
	GetLiveByEmail(email string) (*models.EmailVerification, error)
	MarkVerified(id int64) error
}

type emailVerificationRepository struct {
	DB *sql.DB
}

func NewEmailVerificationRepository(db *sql.DB) EmailVerificationRepository {
	return &emailVerificationRepository{DB: db}
}

func (r *emailVerificationRepository) Replace(email, code string, createdAt time.Time) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("email_verification replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM email_verifications WHERE email = $1`, email); err != nil {
		return 0, fmt.Errorf("email_verification delete old: %w", err)
	}

	var id int64
	const q = `
		INSERT INTO email_verifications (email, code, created_at, verified)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id
	`
	if err := tx.QueryRow(q, email, code, createdAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("email_verification create: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("email_verification commit: %w", err)
	}
	return id, nil
}

// GetLiveByEmail — последняя неподтверждённая запись (после Replace она одна).
func (r *emailVerificationRepository) GetLiveByEmail(email string) (*models.EmailVerification, error) {
	const q = `
		SELECT id, email, code, created_at, verified
		FROM email_verifications
		WHERE email = $1 AND verified = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`
	v := &models.EmailVerification{}
	err := r.DB.QueryRow(q, email).Scan(&v.ID, &v.Email, &v.Code, &v.CreatedAt, &v.Verified)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("email_verification live: %w", err)
	}
	return v, nil
}

func (r *emailVerificationRepository) MarkVerified(id int64) error {
	_, err := r.DB.Exec(`UPDATE email_verifications SET verified=TRUE WHERE id=$1`, id)
	return err
}
