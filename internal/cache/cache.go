// Package cache — необязательный redis-кэш для горячих выборок
// (сайдбар "популярное" и т.п.). Без адреса redis кэш просто выключен:
// все методы безопасно работают на nil-получателе.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tbexpert/internal/models"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) GetArticles(ctx context.Context, key string) ([]*models.Article, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache][get] key=%s err=%v", key, err)
		}
		return nil, false
	}
	var articles []*models.Article
	if err := json.Unmarshal(b, &articles); err != nil {
		return nil, false
	}
	return articles, true
}

func (c *Cache) SetArticles(ctx context.Context, key string, articles []*models.Article) {
	if c == nil {
		return
	}
	b, err := json.Marshal(articles)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Printf("[cache][set] key=%s err=%v", key, err)
	}
}
