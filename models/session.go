package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session, bir refresh token oturumunu temsil eder.
//
// Refresh token'ın kendisi DB'de saklanmaz — SHA256 hash'i saklanır.
// Token çalınsa bile DB dump'ından geri üretilemez.
type Session struct {
	ID        string    `json:"id"` // uuid
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenClaims, doğrulanmış bir access token'dan çıkarılan kimlik bilgisi.
type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
