package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tbexpert/internal/models"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

const eventSelect = `
	SELECT e.id, e.title, e.date, e.description, e.created_at, e.duration_hours,
	       e.city_id, COALESCE(c.name,''), e.view_count,
	       COALESCE(e.author_full_name,''), COALESCE(e.author_job_title,''),
	       COALESCE(array_agg(DISTINCT ec.slug) FILTER (WHERE ec.slug IS NOT NULL), '{}'),
	       COALESCE(array_agg(DISTINCT et.slug) FILTER (WHERE et.slug IS NOT NULL), '{}')
	FROM events e
	LEFT JOIN cities c ON c.id = e.city_id
	LEFT JOIN event_category_links ecl ON ecl.event_id = e.id
	LEFT JOIN event_categories ec ON ec.id = ecl.category_id
	LEFT JOIN event_tag_links etl ON etl.event_id = e.id
	LEFT JOIN event_tags et ON et.id = etl.tag_id
`

const eventGroup = ` GROUP BY e.id, c.name`

func scanEvents(rows *sql.Rows) ([]*models.Event, error) {
	var res []*models.Event
	for rows.Next() {
		e := &models.Event{}
		var (
			duration sql.NullInt64
			cityID   sql.NullInt64
			cats     pq.StringArray
			tags     pq.StringArray
		)
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Date, &e.Description, &e.CreatedAt, &duration,
			&cityID, &e.CityName, &e.ViewCount,
			&e.SpeakerName, &e.SpeakerJobTitle,
			&cats, &tags,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			e.DurationHours = &d
		}
		if cityID.Valid {
			id := cityID.Int64
			e.CityID = &id
		}
		e.Categories = cats
		e.Tags = tags
		res = append(res, e)
	}
	return res, rows.Err()
}

func (r *EventRepository) List() ([]*models.Event, error) {
	rows, err := r.DB.Query(eventSelect + eventGroup + ` ORDER BY e.date`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByMonth — события месяца для календарного виджета.
func (r *EventRepository) ListByMonth(year, month int) ([]*models.Event, error) {
	q := eventSelect + ` WHERE EXTRACT(YEAR FROM e.date) = $1 AND EXTRACT(MONTH FROM e.date) = $2` +
		eventGroup + ` ORDER BY e.date`
	rows, err := r.DB.Query(q, year, month)
	if err != nil {
		return nil, fmt.Errorf("list events by month: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *EventRepository) GetByID(id int64) (*models.Event, error) {
	rows, err := r.DB.Query(eventSelect+` WHERE e.id = $1`+eventGroup, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	defer rows.Close()
	items, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

func (r *EventRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE events SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment event views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *EventRepository) ListCategories() ([]*models.EventCategory, error) {
	rows, err := r.DB.Query(`SELECT id, slug, name, is_private FROM event_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list event categories: %w", err)
	}
	defer rows.Close()

	var res []*models.EventCategory
	for rows.Next() {
		c := &models.EventCategory{}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.IsPrivate); err != nil {
			return nil, fmt.Errorf("scan event category: %w", err)
		}
		res = append(res, c)
	}
	return res, rows.Err()
}
