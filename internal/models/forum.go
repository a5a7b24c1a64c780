package models

import "time"

// Author — эксперт портала; страница форума собирает контент выбранного автора.
type Author struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Message — сообщение общего чата на странице форума.
type Message struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Question — вопрос эксперту от авторизованного пользователя.
type Question struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
