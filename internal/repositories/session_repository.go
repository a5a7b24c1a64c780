package repositories

import (
	"database/sql"
	"fmt"
)

// SessionRepository — серверная часть браузерной сессии. Между шагами
// регистрации в ней живёт pending email, после входа — id пользователя.
type SessionRepository interface {
	PendingEmail(token string) (string, error)
	SetPendingEmail(token, email string) error
	ClearPendingEmail(token string) error
	BindUser(token string, userID int) error
}

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) PendingEmail(token string) (string, error) {
	var email sql.NullString
	err := r.DB.QueryRow(`SELECT pending_email FROM sessions WHERE token = $1`, token).Scan(&email)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session pending email: %w", err)
	}
	return email.String, nil
}

func (r *sessionRepository) SetPendingEmail(token, email string) error {
	const q = `
		INSERT INTO sessions (token, pending_email, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (token) DO UPDATE SET pending_email = EXCLUDED.pending_email
	`
	if _, err := r.DB.Exec(q, token, email); err != nil {
		return fmt.Errorf("session set pending email: %w", err)
	}
	return nil
}

func (r *sessionRepository) ClearPendingEmail(token string) error {
	if _, err := r.DB.Exec(`UPDATE sessions SET pending_email = NULL WHERE token = $1`, token); err != nil {
		return fmt.Errorf("session clear pending email: %w", err)
	}
	return nil
}

func (r *sessionRepository) BindUser(token string, userID int) error {
	const q = `
		INSERT INTO sessions (token, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id
	`
	if _, err := r.DB.Exec(q, token, userID); err != nil {
		return fmt.Errorf("session bind user: %w", err)
	}
	return nil
}
