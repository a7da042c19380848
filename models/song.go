package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Song, platformdaki bir şarkıyı temsil eder.
//
// Dosya içeriği bu core'un kapsamı dışındadır — Song sadece metadata taşır.
// IsBanned türetilmiş flag'tir (bkz. models/ban.go).
type Song struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Artist          string    `json:"artist"`
	OwnerUserID     int64     `json:"owner_user_id"`
	DurationSeconds int       `json:"duration_seconds"`
	IsBanned        bool      `json:"is_banned"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateSongRequest, şarkı oluşturma isteği.
type CreateSongRequest struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	DurationSeconds int    `json:"duration_seconds"`
}

// Validate, CreateSongRequest kontrolü.
func (r *CreateSongRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	n := utf8.RuneCountInString(r.Title)
	if n < 1 || n > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}

	r.Artist = strings.TrimSpace(r.Artist)
	if utf8.RuneCountInString(r.Artist) > 200 {
		return fmt.Errorf("artist must be at most 200 characters")
	}

	if r.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds cannot be negative")
	}

	return nil
}

// DownloadGrant, indirme yetkisi verilen bir şarkı için dönen bilet.
// Dosya streaming'i ayrı bir servisin işidir — bu core sadece policy
// kararını verir ve kısa ömürlü bir grant üretir.
type DownloadGrant struct {
	GrantID   string    `json:"grant_id"`
	SongID    int64     `json:"song_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
