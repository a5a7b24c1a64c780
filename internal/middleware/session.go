package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"tbexpert/internal/utils"
)

const (
	SessionCookie = "tbx_session"
	sessionMaxAge = 30 * 24 * 60 * 60 // секунды
)

// SessionMiddleware выдаёт браузеру cookie с непрозрачным токеном сессии.
// Между шагами регистрации по нему хранится серверное состояние.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			token, err = utils.NewOpaqueToken(32)
			if err != nil {
				log.Printf("[session] генерация токена: err=%v", err)
				c.Next()
				return
			}
			c.SetCookie(SessionCookie, token, sessionMaxAge, "/", "", false, true)
		}
		c.Set("session_token", token)
		c.Next()
	}
}

// SessionToken — токен сессии текущего запроса.
func SessionToken(c *gin.Context) string {
	return c.GetString("session_token")
}
