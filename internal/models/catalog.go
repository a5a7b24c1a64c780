package models

import "time"

type Document struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Topics      string    `json:"topics"`
	FileURL     string    `json:"file_url,omitempty"`
	FilePath    string    `json:"file,omitempty"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"created_date"`
	AuthorID    *int64    `json:"author_id,omitempty"`
}

type Law struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Topics      string    `json:"topics"`
	Number      string    `json:"number,omitempty"` // номер приказа
	FileURL     string    `json:"file_url,omitempty"`
	FilePath    string    `json:"file,omitempty"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidTo     time.Time `json:"valid_to"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"created_date"`
	Tags        []string  `json:"tags"`
}

type Checklist struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	UseCase      string    `json:"use_case"` // сценарий использования
	Category     string    `json:"category"`
	FileURL      string    `json:"file_url,omitempty"`
	FilePath     string    `json:"file,omitempty"`
	ValidFrom    time.Time `json:"valid_from"`
	Views        int       `json:"views"`
	PinnedToMain bool      `json:"pinned_to_main"`
	AuthorID     *int64    `json:"author_id,omitempty"`
}

type Instruction struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	InstructionType string    `json:"instruction_type"` // вводный/первичный/повторный/целевой/внеплановый
	Format          string    `json:"format"`           // text/video/pdf
	Category        string    `json:"category"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	FilePath        string    `json:"file,omitempty"`
	ExternalLink    string    `json:"external_link,omitempty"`
	CreatedDate     time.Time `json:"created_date"`
	ViewCount       int       `json:"view_count"`
	IsPopular       bool      `json:"is_popular"`
}

type FAQ struct {
	ID               int64     `json:"id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	Author           string    `json:"author,omitempty"`
	AuthorProfession string    `json:"author_profession,omitempty"`
	Category         string    `json:"category"`
	ViewCount        int       `json:"view_count"`
	IsPopular        bool      `json:"is_popular"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Webinar struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`  // upcoming/completed
	Special         bool      `json:"special"` // спецпроект
	Date            time.Time `json:"date"`
	Speaker         string    `json:"speaker,omitempty"`
	SpeakerJobTitle string    `json:"speaker_job_title,omitempty"`
	Link            string    `json:"link,omitempty"`
	ViewCount       int       `json:"view_count"`
	CreatedAt       time.Time `json:"created_at"`
}
