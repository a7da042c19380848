// Package models, uygulamanın domain modellerini tanımlar.
//
// Bu dosya moderasyon policy kararlarının sonuç tipini içerir.
//
// Decision neden error değil?
// Policy redleri beklenen, sayılabilir sonuçlardır — "yetkin yok" bir
// exception değil, bir cevaptır. Error kanalı sadece altyapı hataları
// (DB bağlantısı vb.) için kullanılır. Handler'lar Decision üzerinden
// kesin hata mesajı üretir, error üzerinden 500 döner.
package models

// RejectReason, bir policy reddinin nedenini temsil eden kapalı enumeration.
//
// Yeni bir moderasyon kuralı eklemek yeni bir reason eklemeyi gerektirir —
// serbest metin hata mesajı ASLA kullanılmaz. Frontend bu kodlara göre
// lokalize mesaj gösterir.
type RejectReason int

const (
	ReasonUserNotFound RejectReason = iota + 1
	ReasonSongNotFound
	ReasonCollectionNotFound
	ReasonNoAccessLevel
	ReasonBanned    // özne (aktör veya hedef) banlı
	ReasonNotBanned // hedef banlı değil — unban edilemez
	ReasonSameUser  // aktör kendini banlayamaz
	ReasonTargetIsAdmin
	ReasonCannotBanUsers
	ReasonCannotBanSongs
	ReasonCannotBanCollections
	ReasonCannotManageReports
	ReasonCannotManageSupports
	ReasonCannotDownload
)

// String, reason'ın API response'larında kullanılan sabit wire kodunu döner.
func (r RejectReason) String() string {
	switch r {
	case ReasonUserNotFound:
		return "user_not_found"
	case ReasonSongNotFound:
		return "song_not_found"
	case ReasonCollectionNotFound:
		return "collection_not_found"
	case ReasonNoAccessLevel:
		return "no_access_level"
	case ReasonBanned:
		return "banned"
	case ReasonNotBanned:
		return "not_banned"
	case ReasonSameUser:
		return "same_user"
	case ReasonTargetIsAdmin:
		return "target_is_admin"
	case ReasonCannotBanUsers:
		return "cannot_ban_users"
	case ReasonCannotBanSongs:
		return "cannot_ban_songs"
	case ReasonCannotBanCollections:
		return "cannot_ban_collections"
	case ReasonCannotManageReports:
		return "cannot_manage_reports"
	case ReasonCannotManageSupports:
		return "cannot_manage_supports"
	case ReasonCannotDownload:
		return "cannot_download"
	default:
		return "unknown"
	}
}

// Decision, bir policy kontrolünün sonucu.
//
// İki durumu vardır: izin verildi (Allow) veya reddedildi (Reject + neden).
// Zero value Allow'dur — bu yüzden Decision her zaman (Decision, error)
// çiftinin error'ı kontrol edildikten SONRA okunmalıdır.
type Decision struct {
	reason RejectReason
}

// Allow, izin verilen kararı döner.
func Allow() Decision {
	return Decision{}
}

// Reject, verilen nedenle reddedilen kararı döner.
func Reject(reason RejectReason) Decision {
	return Decision{reason: reason}
}

// Allowed, kararın izin olup olmadığını döner.
func (d Decision) Allowed() bool {
	return d.reason == 0
}

// Reason, red nedenini döner. Allowed() true ise anlamsızdır (0).
func (d Decision) Reason() RejectReason {
	return d.reason
}
