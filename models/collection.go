package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Collection, kullanıcı tarafından derlenen bir şarkı koleksiyonunu temsil eder.
// IsBanned türetilmiş flag'tir (bkz. models/ban.go).
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID int64     `json:"owner_user_id"`
	IsBanned    bool      `json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionWithSongs, detay görünümünde şarkılarıyla birlikte dönen koleksiyon.
type CollectionWithSongs struct {
	Collection
	Songs []Song `json:"songs"`
}

// CreateCollectionRequest, koleksiyon oluşturma isteği.
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// Validate, CreateCollectionRequest kontrolü.
func (r *CreateCollectionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	n := utf8.RuneCountInString(r.Name)
	if n < 1 || n > 100 {
		return fmt.Errorf("name must be between 1 and 100 characters")
	}
	return nil
}

// AddSongRequest, koleksiyona şarkı ekleme isteği.
type AddSongRequest struct {
	SongID int64 `json:"song_id"`
}

// Validate, AddSongRequest kontrolü.
func (r *AddSongRequest) Validate() error {
	if r.SongID <= 0 {
		return fmt.Errorf("song_id is required")
	}
	return nil
}
