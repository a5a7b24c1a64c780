package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewOpaqueToken — случайный hex-токен (refresh-токены, cookie сессии).
func NewOpaqueToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
