// Package models — Ban (yasaklama) domain modeli.
//
// Ban sistemi nasıl çalışır?
// 1. Yetkili bir kullanıcı bir user/şarkı/koleksiyonu banlar → bans tablosuna
//    süreli bir kayıt yazılır, hedefin is_banned flag'i set edilir.
// 2. Banlı kullanıcı login/WS denemesi yaparsa reddedilir; banlı şarkı ve
//    koleksiyonlar listelerden düşer, indirilemez.
// 3. Aynı hedefe birden fazla ban kaydı olabilir (yenileme/üst üste ban) —
//    hedef, en az bir kaydın süresi dolmadığı sürece banlı sayılır.
// 4. Unban, hedefin TÜM aktif kayıtlarını siler ("tek kayıt sil" değil).
// 5. Süresi dolan kayıtları arka plandaki sweeper temizler ve flag'i
//    kalan aktif kayıt yoksa düşürür.
//
// Kaynak-gerçeği (source of truth) ban satırlarıdır; is_banned türetilmiş
// bir cache'tir. İkisini sadece ModerationService ve BanSweeper yazar.
package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxBanReasonLen, ban gerekçesinin maksimum uzunluğu (policy kuralı).
const MaxBanReasonLen = 500

// BanKind, ban hedefinin türünü temsil eder.
// Sayısal değerler DB'de saklanır — değiştirilemez.
type BanKind int

const (
	BanKindUser       BanKind = 1
	BanKindSong       BanKind = 2
	BanKindCollection BanKind = 3
)

// String, kind'ın URL ve API'de kullanılan adını döner.
func (k BanKind) String() string {
	switch k {
	case BanKindUser:
		return "user"
	case BanKindSong:
		return "song"
	case BanKindCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// ParseBanKind, URL path segment'inden BanKind üretir.
func ParseBanKind(s string) (BanKind, error) {
	switch s {
	case "user":
		return BanKindUser, nil
	case "song":
		return BanKindSong, nil
	case "collection":
		return BanKindCollection, nil
	default:
		return 0, fmt.Errorf("invalid ban kind: %q", s)
	}
}

// Ban, süreli bir yasaklama kaydını temsil eder.
//
// Hedef kolonlarından (BannedUserID / BannedSongID / BannedCollectionID)
// her zaman TAM BİR TANESİ doludur — DB'de CHECK constraint ile korunur.
// Kind kolonu hangi hedefin dolu olduğuyla redundant'tır; hızlı filtreleme
// için tutulur.
type Ban struct {
	ID                 int64     `json:"id"`
	BannedByUserID     int64     `json:"banned_by_user_id"`
	BannedUserID       *int64    `json:"banned_user_id,omitempty"`
	BannedSongID       *int64    `json:"banned_song_id,omitempty"`
	BannedCollectionID *int64    `json:"banned_collection_id,omitempty"`
	Kind               BanKind   `json:"kind"`
	Reason             string    `json:"reason"`
	BanUntil           time.Time `json:"ban_until"`
	BannedAt           time.Time `json:"banned_at"`
}

// TargetID, dolu olan hedef kolonunun değerini döner.
func (b *Ban) TargetID() int64 {
	switch {
	case b.BannedUserID != nil:
		return *b.BannedUserID
	case b.BannedSongID != nil:
		return *b.BannedSongID
	case b.BannedCollectionID != nil:
		return *b.BannedCollectionID
	default:
		return 0
	}
}

// BanRequest, ban oluşturma isteği.
type BanRequest struct {
	Reason   string    `json:"reason"`
	BanUntil time.Time `json:"ban_until"`
}

// Validate, BanRequest kontrolü.
// Gerekçe boş olamaz (moderasyon audit'i için zorunlu) ve bitiş anı
// kesin olarak gelecekte olmalıdır — süresi geçmiş ban yazılamaz.
func (r *BanRequest) Validate() error {
	if r.Reason == "" {
		return fmt.Errorf("ban reason is required")
	}
	if utf8.RuneCountInString(r.Reason) > MaxBanReasonLen {
		return fmt.Errorf("ban reason must be at most %d characters", MaxBanReasonLen)
	}
	if !r.BanUntil.After(time.Now().UTC()) {
		return fmt.Errorf("ban_until must be in the future")
	}
	return nil
}

// BanDetail, son banlar feed'inde dönen zenginleştirilmiş kayıt.
// Aktör ve hedef isimleri JOIN ile doldurulur.
type BanDetail struct {
	ID         int64     `json:"id"`
	BannedBy   string    `json:"banned_by"`
	Kind       string    `json:"kind"`
	TargetID   int64     `json:"target_id"`
	TargetName string    `json:"target_name"`
	Reason     string    `json:"reason"`
	BanUntil   time.Time `json:"ban_until"`
	BannedAt   time.Time `json:"banned_at"`
}
