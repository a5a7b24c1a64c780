package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tbexpert/internal/models"
)

func TestMonthGrid_March2025(t *testing.T) {
	// март 2025 начинается с субботы
	weeks := monthGrid(2025, 3)
	require.Len(t, weeks, 6)
	require.Equal(t, [7]int{0, 0, 0, 0, 0, 1, 2}, weeks[0])
	require.Equal(t, [7]int{3, 4, 5, 6, 7, 8, 9}, weeks[1])
	require.Equal(t, [7]int{31, 0, 0, 0, 0, 0, 0}, weeks[5])
}

func TestMonthGrid_StartsMonday(t *testing.T) {
	// сентябрь 2025 начинается ровно с понедельника
	weeks := monthGrid(2025, 9)
	require.Equal(t, [7]int{1, 2, 3, 4, 5, 6, 7}, weeks[0])
	require.Len(t, weeks, 5)
}

func TestBuildCalendarMonth(t *testing.T) {
	today := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []*models.Event{
		{ID: 1, Title: "Семинар по СИЗ", Date: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Вебинар", Date: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Конференция", Date: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)},
	}

	m := BuildCalendarMonth(events, 2025, 3, "2025-03-05", today)

	require.Equal(t, "Март 2025", m.Title)
	require.Len(t, m.EventsByDay[5], 2)
	require.Len(t, m.EventsByDay[20], 1)
	require.Empty(t, m.EventsByDay[6])

	require.Equal(t, 5, m.EventDay)
	require.Equal(t, "05 марта", m.EventDayLabel)

	require.Equal(t, 2025, m.PrevYear)
	require.Equal(t, 2, m.PrevMonth)
	require.Equal(t, 2025, m.NextYear)
	require.Equal(t, 4, m.NextMonth)
}

func TestBuildCalendarMonth_YearBoundaries(t *testing.T) {
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	jan := BuildCalendarMonth(nil, 2025, 1, "", today)
	require.Equal(t, 2024, jan.PrevYear)
	require.Equal(t, 12, jan.PrevMonth)

	dec := BuildCalendarMonth(nil, 2025, 12, "", today)
	require.Equal(t, 2026, dec.NextYear)
	require.Equal(t, 1, dec.NextMonth)
}

func TestBuildCalendarMonth_BadEventDateFallsBack(t *testing.T) {
	today := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	m := BuildCalendarMonth(nil, 2025, 6, "не-дата", today)
	require.Equal(t, 21, m.EventDay)
	require.Equal(t, "21 июня", m.EventDayLabel)
}
