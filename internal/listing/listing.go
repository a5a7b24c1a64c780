// Package listing — общий механизм фильтрации, сортировки и группировки
// контента по закрытому перечислению категорий. Один и тот же код обслуживает
// документы, НПА, чек-листы, инструктажи, вебинары и вопросы-ответы.
package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"tbexpert/internal/models"
)

type Sort string

const (
	SortDefault  Sort = ""
	SortPopular  Sort = "popular"
	SortDateAsc  Sort = "date_asc"
	SortDateDesc Sort = "date_desc"
)

// Params — параметры списка из query string.
// Limit == 0 означает "без ограничения" (?limit=all либо мусорное значение).
type Params struct {
	Category string
	Query    string
	Sort     Sort
	Limit    int
	Page     int
	PerPage  int
}

// ParseParams разбирает query string. Кривые значения не ошибка:
// они молча заменяются значениями по умолчанию.
func ParseParams(values url.Values) Params {
	p := Params{
		Category: strings.TrimSpace(values.Get("category")),
		Query:    strings.TrimSpace(values.Get("q")),
		Page:     1,
	}

	switch s := Sort(values.Get("sort")); s {
	case SortPopular, SortDateAsc, SortDateDesc:
		p.Sort = s
	}

	if raw := values.Get("limit"); raw != "" && raw != "all" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = n
		}
	}
	return p
}

// Meta описывает, как читать поля конкретного типа контента.
// Search возвращает фиксированную пару полей (title+description или
// question+answer); поиск — регистронезависимое вхождение в любое из них.
type Meta[T any] struct {
	Category func(T) string
	Search   func(T) (string, string)
	DateOf   func(T) int64 // unix-время для сортировок по дате
	Views    func(T) int
	Popular  func(T) bool // nil — у типа нет флага популярности
}

func matches[T any](item T, m Meta[T], query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	a, b := m.Search(item)
	return strings.Contains(strings.ToLower(a), q) || strings.Contains(strings.ToLower(b), q)
}

func sortItems[T any](items []T, m Meta[T], s Sort) {
	switch s {
	case SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool { return m.DateOf(items[i]) < m.DateOf(items[j]) })
	case SortDateDesc:
		sort.SliceStable(items, func(i, j int) bool { return m.DateOf(items[i]) > m.DateOf(items[j]) })
	case SortPopular:
		sort.SliceStable(items, func(i, j int) bool {
			if m.Popular != nil {
				pi, pj := m.Popular(items[i]), m.Popular(items[j])
				if pi != pj {
					return pi
				}
			}
			return m.Views(items[i]) > m.Views(items[j])
		})
	default:
		// по умолчанию — обратная хронология
		sort.SliceStable(items, func(i, j int) bool { return m.DateOf(items[i]) > m.DateOf(items[j]) })
	}
}

// Select — плоская выборка: фильтр по категории и поисковой строке,
// сортировка, ограничение размера. Пустая категория — без фильтра по ней.
func Select[T any](items []T, m Meta[T], p Params) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if p.Category != "" && m.Category(it) != p.Category {
			continue
		}
		if !matches(it, m, p.Query) {
			continue
		}
		out = append(out, it)
	}
	sortItems(out, m, p.Sort)
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// Grouped — отображение "метка категории → её подборка". Перечисление
// обходится в объявленном порядке, пустые категории в результат не попадают.
// Если в Params задана категория, группируем только её (неизвестный ключ
// даёт пустую мапу). caps — статичные лимиты показа по ключу категории,
// применяются после сортировки.
func Grouped[T any](items []T, cats []models.ContentCategory, m Meta[T], p Params, caps map[string]int) map[string][]T {
	grouped := make(map[string][]T)
	for _, cat := range cats {
		if p.Category != "" && cat.Key != p.Category {
			continue
		}
		sub := Select(items, m, Params{Category: cat.Key, Query: p.Query, Sort: p.Sort})
		if len(sub) == 0 {
			continue
		}
		if max, ok := caps[cat.Key]; ok && max > 0 && len(sub) > max {
			sub = sub[:max]
		}
		grouped[cat.Label] = sub
	}
	return grouped
}

// Page — страница выборки.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"number"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Paginate — нарезка на страницы; номер за пределами диапазона прижимается
// к ближайшей существующей странице (как django Paginator.get_page).
func Paginate[T any](items []T, number, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = 10
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	lo := (number - 1) * perPage
	hi := lo + perPage
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	return Page[T]{
		Items:      items[lo:hi],
		Number:     number,
		PerPage:    perPage,
		TotalPages: totalPages,
		TotalItems: total,
	}
}
