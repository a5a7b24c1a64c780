package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type ForumRepository struct {
	DB *sql.DB
}

func NewForumRepository(db *sql.DB) *ForumRepository {
	return &ForumRepository{DB: db}
}

func (r *ForumRepository) ListMessages() ([]*models.Message, error) {
	const q = `
		SELECT m.id, m.user_id, COALESCE(u.full_name,''), m.text, m.created_at
		FROM forum_messages m
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at, m.id
	`
	rows, err := r.DB.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list forum messages: %w", err)
	}
	defer rows.Close()

	var res []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserName, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan forum message: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *ForumRepository) CreateMessage(userID int, text string) (*models.Message, error) {
	const q = `
		INSERT INTO forum_messages (user_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	m := &models.Message{UserID: userID, Text: text}
	if err := r.DB.QueryRow(q, userID, text).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("create forum message: %w", err)
	}
	return m, nil
}

func (r *ForumRepository) CreateQuestion(userID int, text string) (*models.Question, error) {
	const q = `
		INSERT INTO questions (user_id, text)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	question := &models.Question{UserID: userID, Text: text}
	if err := r.DB.QueryRow(q, userID, text).Scan(&question.ID, &question.CreatedAt); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// DeleteQuestion — удаляет только собственный вопрос пользователя.
func (r *ForumRepository) DeleteQuestion(id int64, userID int) error {
	res, err := r.DB.Exec(`DELETE FROM questions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
