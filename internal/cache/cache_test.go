package cache

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"tbexpert/internal/models"
)

func TestCache_SetGet(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	c := New(m.Addr(), "", 0, time.Minute)
	ctx := context.Background()

	_, ok := c.GetArticles(ctx, "popular")
	require.False(t, ok)

	articles := []*models.Article{{ID: 1, Title: "Новые правила СИЗ", Alias: "novye-pravila-siz"}}
	c.SetArticles(ctx, "popular", articles)

	got, ok := c.GetArticles(ctx, "popular")
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, "novye-pravila-siz", got[0].Alias)
}

func TestCache_TTL(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	c := New(m.Addr(), "", 0, time.Second)
	ctx := context.Background()
	c.SetArticles(ctx, "popular", []*models.Article{{ID: 1}})

	m.FastForward(2 * time.Second)

	_, ok := c.GetArticles(ctx, "popular")
	require.False(t, ok)
}

func TestCache_NilDisabled(t *testing.T) {
	var c *Cache // redis не настроен
	ctx := context.Background()

	_, ok := c.GetArticles(ctx, "popular")
	require.False(t, ok)
	c.SetArticles(ctx, "popular", nil) // не должен паниковать
}
