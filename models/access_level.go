// Package models — AccessLevel (erişim seviyesi) domain modeli.
//
// Yetki modeli bilinçli olarak düz boolean flag'lerden oluşur — rol/claim
// hiyerarşisi YOKTUR. Her kullanıcı tam bir seviyeye işaret eder; seviyeler
// paylaşılabilir (ör. herkese atanan "default" seviye). Yetki kontrolleri
// inline boolean ifadeler yerine services/policy.go'daki isimli predicate
// fonksiyonlar üzerinden yapılır — policy tek yerden denetlenebilir kalır.
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Seed migration'da oluşturulan sabit seviye ID'leri.
// Default seviye kayıt sırasında her yeni kullanıcıya atanır.
const (
	DefaultAccessLevelID int64 = 1
	AdminAccessLevelID   int64 = 2
)

// AccessLevel, bir kullanıcının yapabileceklerini belirleyen flag seti.
//
// Yaşam döngüsü: admin aksiyonu veya kayıt sırasındaki default-bootstrap ile
// oluşturulur; sadece açık bir update ile değişir; otomatik silinmez.
type AccessLevel struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	CanBanUser            bool   `json:"can_ban_user"`
	CanBanSong            bool   `json:"can_ban_song"`
	CanBanCollection      bool   `json:"can_ban_collection"`
	CanDownload           bool   `json:"can_download"`
	CanUpload             bool   `json:"can_upload"`
	CanReport             bool   `json:"can_report"`
	CanManageReports      bool   `json:"can_manage_reports"`
	CanManageSupports     bool   `json:"can_manage_supports"`
	CanManageAccessLevels bool   `json:"can_manage_access_levels"`
}

// AccessLevelRequest, seviye oluşturma/güncelleme isteği.
type AccessLevelRequest struct {
	Name                  string `json:"name"`
	CanBanUser            bool   `json:"can_ban_user"`
	CanBanSong            bool   `json:"can_ban_song"`
	CanBanCollection      bool   `json:"can_ban_collection"`
	CanDownload           bool   `json:"can_download"`
	CanUpload             bool   `json:"can_upload"`
	CanReport             bool   `json:"can_report"`
	CanManageReports      bool   `json:"can_manage_reports"`
	CanManageSupports     bool   `json:"can_manage_supports"`
	CanManageAccessLevels bool   `json:"can_manage_access_levels"`
}

// Validate, AccessLevelRequest kontrolü.
func (r *AccessLevelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	n := utf8.RuneCountInString(r.Name)
	if n < 1 || n > 64 {
		return fmt.Errorf("access level name must be between 1 and 64 characters")
	}
	return nil
}

// ToAccessLevel, request'ten entity üretir (ID'siz).
func (r *AccessLevelRequest) ToAccessLevel() *AccessLevel {
	return &AccessLevel{
		Name:                  r.Name,
		CanBanUser:            r.CanBanUser,
		CanBanSong:            r.CanBanSong,
		CanBanCollection:      r.CanBanCollection,
		CanDownload:           r.CanDownload,
		CanUpload:             r.CanUpload,
		CanReport:             r.CanReport,
		CanManageReports:      r.CanManageReports,
		CanManageSupports:     r.CanManageSupports,
		CanManageAccessLevels: r.CanManageAccessLevels,
	}
}
