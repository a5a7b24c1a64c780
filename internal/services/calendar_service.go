package services

import (
	"fmt"
	"time"

	"tbexpert/internal/models"
	"tbexpert/internal/repositories"
)

// именительный падеж — для заголовка месяца
var russianMonths = [13]string{
	"", "январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// родительный падеж — для даты вида "05 марта"
var russianMonthsGenitive = [13]string{
	"", "января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var russianWeekdaysShort = []string{"пн", "вт", "ср", "чт", "пт", "сб", "вс"}

// CalendarMonth — сетка месяца для виджета календаря мероприятий.
// Недели начинаются с понедельника, дни чужих месяцев заполнены нулями.
type CalendarMonth struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Title string `json:"title"` // "Март 2025"

	Weeks    [][7]int `json:"month_days"`
	Weekdays []string `json:"weekdays"`

	EventsByDay map[int][]*models.Event `json:"events_by_day"`

	PrevYear  int `json:"prev_year"`
	PrevMonth int `json:"prev_month"`
	NextYear  int `json:"next_year"`
	NextMonth int `json:"next_month"`

	EventDay      int    `json:"event_day"`
	EventDayLabel string `json:"event_day_localized"` // "05 марта"
}

// monthGrid — недели месяца, понедельник первый, ноль вместо дней
// соседних месяцев.
func monthGrid(year, month int) [][7]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Weekday(): воскресенье 0, нужен понедельник 0
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func capitalizeMonth(m string) string {
	r := []rune(m)
	// русские буквы: строчная и заглавная отличаются на 32
	if len(r) > 0 && r[0] >= 'а' && r[0] <= 'я' {
		r[0] -= 32
	}
	return string(r)
}

// BuildCalendarMonth собирает сетку месяца по списку мероприятий этого
// месяца. Нечитаемая строка eventDate молча заменяется сегодняшним днём.
func BuildCalendarMonth(events []*models.Event, year, month int, eventDate string, today time.Time) CalendarMonth {
	prevYear, prevMonth := year, month-1
	if month == 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth := year, month+1
	if month == 12 {
		nextYear, nextMonth = year+1, 1
	}

	byDay := make(map[int][]*models.Event)
	for _, e := range events {
		byDay[e.Date.Day()] = append(byDay[e.Date.Day()], e)
	}

	selected := today
	if eventDate != "" {
		if t, err := time.Parse("2006-01-02", eventDate); err == nil {
			selected = t
		}
	}

	return CalendarMonth{
		Year:        year,
		Month:       month,
		Title:       fmt.Sprintf("%s %d", capitalizeMonth(russianMonths[month]), year),
		Weeks:       monthGrid(year, month),
		Weekdays:    russianWeekdaysShort,
		EventsByDay: byDay,
		PrevYear:    prevYear,
		PrevMonth:   prevMonth,
		NextYear:    nextYear,
		NextMonth:   nextMonth,
		EventDay:    selected.Day(),
		EventDayLabel: fmt.Sprintf("%02d %s",
			selected.Day(), russianMonthsGenitive[int(selected.Month())]),
	}
}

// CalendarService — календарь мероприятий и сами мероприятия.
type CalendarService struct {
	events *repositories.EventRepository
}

func NewCalendarService(events *repositories.EventRepository) *CalendarService {
	return &CalendarService{events: events}
}

// Month — сетка запрошенного месяца; нулевые год и месяц означают текущий.
func (s *CalendarService) Month(year, month int, eventDate string, today time.Time) (*CalendarMonth, error) {
	if year == 0 {
		year = today.Year()
	}
	if month < 1 || month > 12 {
		month = int(today.Month())
	}
	events, err := s.events.ListByMonth(year, month)
	if err != nil {
		return nil, err
	}
	grid := BuildCalendarMonth(events, year, month, eventDate, today)
	return &grid, nil
}

func (s *CalendarService) Events() ([]*models.Event, error) {
	return s.events.List()
}

func (s *CalendarService) EventCategories() ([]*models.EventCategory, error) {
	return s.events.ListCategories()
}

// EventByID — карточка мероприятия с учётом просмотра.
func (s *CalendarService) EventByID(id int64) (*models.Event, error) {
	if err := s.events.IncrementViews(id); err != nil {
		return nil, notFoundOr(err, "event")
	}
	return s.events.GetByID(id)
}
