package listing

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tbexpert/internal/models"
)

func docMeta() Meta[*models.Document] {
	return Meta[*models.Document]{
		Category: func(d *models.Document) string { return d.Category },
		Search:   func(d *models.Document) (string, string) { return d.Title, d.Description },
		DateOf:   func(d *models.Document) int64 { return d.ValidFrom.Unix() },
		Views:    func(d *models.Document) int { return d.Views },
	}
}

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func sampleDocs() []*models.Document {
	return []*models.Document{
		{ID: 1, Title: "Safety audit plan", Description: "ежегодный план", Category: "other", ValidFrom: day(1), Views: 5},
		{ID: 2, Title: "Регламент расследования", Description: "incident safety rules", Category: "other", ValidFrom: day(3), Views: 50},
		{ID: 3, Title: "Политика SAFETY", Description: "", Category: "other", ValidFrom: day(2), Views: 20},
		{ID: 4, Title: "Отчет по травматизму", Description: "ничего общего", Category: "incidents", ValidFrom: day(4), Views: 100},
		{ID: 5, Title: "Карта рисков", Description: "", Category: "safety_management", ValidFrom: day(5), Views: 1},
	}
}

func TestParseParams_Defaults(t *testing.T) {
	v := url.Values{}
	v.Set("limit", "mustard") // мусор вместо числа
	v.Set("page", "-3")
	v.Set("sort", "sideways")

	p := ParseParams(v)
	require.Equal(t, 0, p.Limit, "кривой limit трактуется как all")
	require.Equal(t, 1, p.Page)
	require.Equal(t, SortDefault, p.Sort)
}

func TestParseParams_All(t *testing.T) {
	v := url.Values{}
	v.Set("category", "other")
	v.Set("q", " safety ")
	v.Set("sort", "date_desc")
	v.Set("limit", "5")
	v.Set("page", "2")

	p := ParseParams(v)
	require.Equal(t, Params{Category: "other", Query: "safety", Sort: SortDateDesc, Limit: 5, Page: 2}, p)
}

// Пример из постановки: категория + поиск + сортировка + лимит.
func TestSelect_CategorySearchSortLimit(t *testing.T) {
	got := Select(sampleDocs(), docMeta(), Params{
		Category: "other",
		Query:    "safety",
		Sort:     SortDateDesc,
		Limit:    5,
	})

	require.Len(t, got, 3)
	// все совпадения регистронезависимы, по title или description
	require.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	for _, d := range got {
		require.Equal(t, "other", d.Category)
	}
}

func TestSelect_EmptyQueryReturnsAll(t *testing.T) {
	got := Select(sampleDocs(), docMeta(), Params{Category: "other"})
	require.Len(t, got, 3)
}

func TestSelect_LimitTruncatesAfterSort(t *testing.T) {
	got := Select(sampleDocs(), docMeta(), Params{Category: "other", Sort: SortDateAsc, Limit: 1})
	require.Len(t, got, 1)
	require.EqualValues(t, 1, got[0].ID)
}

func TestSelect_PopularSort(t *testing.T) {
	faqs := []*models.FAQ{
		{ID: 1, Question: "a", ViewCount: 10, IsPopular: false},
		{ID: 2, Question: "b", ViewCount: 1, IsPopular: true},
		{ID: 3, Question: "c", ViewCount: 99, IsPopular: false},
	}
	m := Meta[*models.FAQ]{
		Category: func(f *models.FAQ) string { return f.Category },
		Search:   func(f *models.FAQ) (string, string) { return f.Question, f.Answer },
		DateOf:   func(f *models.FAQ) int64 { return f.CreatedAt.Unix() },
		Views:    func(f *models.FAQ) int { return f.ViewCount },
		Popular:  func(f *models.FAQ) bool { return f.IsPopular },
	}
	got := Select(faqs, m, Params{Sort: SortPopular})
	// сначала флаг популярности, затем просмотры по убыванию
	require.Equal(t, []int64{2, 3, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestGrouped_DeclaredOrderAndCaps(t *testing.T) {
	caps := map[string]int{"other": 2}
	got := Grouped(sampleDocs(), models.DocumentCategories, docMeta(), Params{Sort: SortDateDesc}, caps)

	require.Len(t, got, 3)
	require.Len(t, got["Другие документы"], 2, "лимит категории применяется после сортировки")
	require.EqualValues(t, 2, got["Другие документы"][0].ID)
	require.Len(t, got["Инциденты и расследования"], 1)
	require.Len(t, got["Safety management"], 1)
}

func TestGrouped_UnknownCategoryEmptyMap(t *testing.T) {
	got := Grouped(sampleDocs(), models.DocumentCategories, docMeta(), Params{Category: "does_not_exist"}, nil)
	require.Empty(t, got)
	// сам список категорий при этом не пустеет — он статический
	require.NotEmpty(t, models.DocumentCategories)
}

func TestGrouped_SelectedCategoryOnly(t *testing.T) {
	got := Grouped(sampleDocs(), models.DocumentCategories, docMeta(), Params{Category: "incidents"}, nil)
	require.Len(t, got, 1)
	require.Contains(t, got, "Инциденты и расследования")
}

func TestGrouped_OmitsEmptyCategories(t *testing.T) {
	docs := []*models.Document{{ID: 1, Category: "other", ValidFrom: day(1)}}
	got := Grouped(docs, models.DocumentCategories, docMeta(), Params{}, nil)
	require.Len(t, got, 1)
}

func TestPaginate_Clamping(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 2, 2)
	require.Equal(t, []int{3, 4}, p.Items)
	require.Equal(t, 3, p.TotalPages)

	// за пределами диапазона — последняя страница
	p = Paginate(items, 99, 2)
	require.Equal(t, []int{5}, p.Items)
	require.Equal(t, 3, p.Number)

	p = Paginate([]int{}, 1, 10)
	require.Empty(t, p.Items)
	require.Equal(t, 1, p.TotalPages)
}
