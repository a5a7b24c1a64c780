package models

import "time"

type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EventCategory struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"` // доступна только авторизованным
}

type EventTag struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Color string `json:"color"` // HEX, например #FF0000
}

type Event struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"` // дата проведения
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	DurationHours   *int      `json:"duration_hours,omitempty"`
	CityID          *int64    `json:"city_id,omitempty"`
	CityName        string    `json:"city,omitempty"`
	ViewCount       int       `json:"view_count"`
	Categories      []string  `json:"categories"` // слаги категорий
	Tags            []string  `json:"tags"`
	SpeakerName     string    `json:"author_full_name,omitempty"`
	SpeakerJobTitle string    `json:"author_job_title,omitempty"`
}

// IsPast — событие уже прошло относительно переданной даты.
func (e *Event) IsPast(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return e.Date.Before(today)
}
