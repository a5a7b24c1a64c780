package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tbexpert/internal/listing"
	"tbexpert/internal/models"
)

func sampleDocuments() []*models.Document {
	day := func(n int) time.Time { return time.Date(2025, 3, n, 0, 0, 0, 0, time.UTC) }
	return []*models.Document{
		{ID: 1, Title: "Положение о СУОТ", Category: "safety_management", Views: 5, ValidFrom: day(1)},
		{ID: 2, Title: "Приказ о назначении ответственного", Category: "safety_management", Views: 50, ValidFrom: day(2)},
		{ID: 3, Title: "Инструкция по СУОТ", Category: "safety_management", Views: 20, ValidFrom: day(3)},
		{ID: 4, Title: "Акт о несчастном случае", Category: "incidents", Views: 100, ValidFrom: day(4)},
	}
}

func documentIDs(items []*models.Document) []int64 {
	ids := make([]int64, len(items))
	for i, d := range items {
		ids[i] = d.ID
	}
	return ids
}

func TestBuildDocumentsPage_Defaults(t *testing.T) {
	page, side := buildDocumentsPage(sampleDocuments(), listing.Params{})

	// без категории — первая из перечисления, без сортировки — по просмотрам
	require.Equal(t, "safety_management", page.Selected)
	require.Equal(t, []int64{2, 3, 1}, documentIDs(page.Items))

	// сайдбар — все документы в обратном порядке дат ввода в действие
	require.Equal(t, []int64{4, 3, 2, 1}, documentIDs(side))
}

func TestBuildDocumentsPage_GroupedSharesLimitedItems(t *testing.T) {
	page, _ := buildDocumentsPage(sampleDocuments(), listing.Params{Limit: 2})

	require.Equal(t, []int64{2, 3}, documentIDs(page.Items))

	// подборка выбранной категории — это та же усечённая выборка,
	// а не полная группа
	require.Len(t, page.Grouped, 1)
	require.Equal(t, page.Items, page.Grouped["Safety management"])
	require.NotContains(t, page.Grouped, "Инциденты и расследования")
}

func TestBuildDocumentsPage_ExplicitCategoryAndSort(t *testing.T) {
	page, _ := buildDocumentsPage(sampleDocuments(), listing.Params{
		Category: "incidents",
		Sort:     listing.SortDateAsc,
	})

	require.Equal(t, "incidents", page.Selected)
	require.Equal(t, []int64{4}, documentIDs(page.Items))
	require.Equal(t, page.Items, page.Grouped["Инциденты и расследования"])
	require.Equal(t, models.DocumentCategories, page.Categories)
}

func TestBuildDocumentsPage_UnknownCategoryEmpty(t *testing.T) {
	page, side := buildDocumentsPage(sampleDocuments(), listing.Params{Category: "nope"})

	require.Empty(t, page.Items)
	require.Empty(t, page.Grouped)
	require.Len(t, side, 4)
}
