package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// User, platformdaki bir kullanıcıyı temsil eder.
//
// IsBanned türetilmiş bir flag'tir — kaynak-gerçeği bans tablosudur
// (bkz. models/ban.go). AccessLevel her sorguda JOIN ile doldurulur;
// AccessLevelID sadece persist için taşınır.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        *string      `json:"email,omitempty"`
	DisplayName  *string      `json:"display_name"`
	PasswordHash string       `json:"-"` // API response'a asla dahil edilmez
	AccessLevelID int64       `json:"access_level_id"`
	AccessLevel  *AccessLevel `json:"access_level,omitempty"`
	IsBanned     bool         `json:"is_banned"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CreateUserRequest, kayıt isteği. PasswordHash yerine Password alınır —
// hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Validate, CreateUserRequest kontrolü.
//   - Username: 3-32 karakter, alfanumerik + alt çizgi
//   - Password: minimum 8 karakter
//   - Email: opsiyonel, kabaca biçim kontrolü
//   - DisplayName: opsiyonel, max 64 karakter
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	n := utf8.RuneCountInString(r.Username)
	if n < 3 || n > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}
	for _, ch := range r.Username {
		if !isValidUsernameChar(ch) {
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.Email = strings.TrimSpace(r.Email)
	if r.Email != "" && (!strings.Contains(r.Email, "@") || len(r.Email) > 254) {
		return fmt.Errorf("invalid email address")
	}

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if utf8.RuneCountInString(r.DisplayName) > 64 {
		return fmt.Errorf("display name must be at most 64 characters")
	}

	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest kontrolü.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func isValidUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
