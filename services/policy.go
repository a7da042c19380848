// Package services — moderasyon policy değerlendiricisi.
//
// Bu dosyadaki fonksiyonlar PURE'dur: DB'ye dokunmaz, saat okumaz, sadece
// verilen snapshot'lar üzerinden karar verir. Veri yükleme ve yazma
// ModerationService'in işidir (moderation_service.go) — policy burada tek
// yerden denetlenebilir kalır ve DB'siz test edilir.
//
// Kural sırası önemlidir ve sabittir: aktör kontrolleri → hedef varlık →
// ilişki kontrolleri → yetenek kontrolleri. İlk ihlal kararı belirler;
// sonraki kurallar değerlendirilmez.
package services

import "github.com/akinalp/melodi/models"

// CheckActor, her moderasyon aksiyonunun ortak aktör ön koşullarını uygular:
// aktör mevcut, banlı değil ve bir erişim seviyesine sahip olmalı.
//
// Tek başına da kullanılır — rapor/destek yönetimi gibi aksiyonlar bu
// baseline üzerine kendi yetenek kontrolünü ekler.
func CheckActor(actor *models.User) models.Decision {
	if actor == nil {
		return models.Reject(models.ReasonUserNotFound)
	}
	if actor.IsBanned {
		return models.Reject(models.ReasonBanned)
	}
	if actor.AccessLevel == nil {
		return models.Reject(models.ReasonNoAccessLevel)
	}
	return models.Allow()
}

// CheckBanUser, actor'ın target'ı banlayıp banlayamayacağına karar verir.
//
// Sıra: aktör ön koşulları → hedef mevcut → kendini banlama →
// hedef zaten banlı → aktör yetkisi → hedef dokunulmazlığı.
// Hedefin de CanBanUser yetkisi varsa banlanamaz — moderatörler birbirini
// düşüremez, admin hesabı kilitlenemez.
func CheckBanUser(actor, target *models.User) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if target == nil {
		return models.Reject(models.ReasonUserNotFound)
	}
	if actor.ID == target.ID {
		return models.Reject(models.ReasonSameUser)
	}
	if target.IsBanned {
		return models.Reject(models.ReasonBanned)
	}
	if !actor.AccessLevel.CanBanUser {
		return models.Reject(models.ReasonCannotBanUsers)
	}
	if target.AccessLevel != nil && target.AccessLevel.CanBanUser {
		return models.Reject(models.ReasonTargetIsAdmin)
	}
	return models.Allow()
}

// CheckUnbanUser, actor'ın target'ın banını kaldırıp kaldıramayacağına
// karar verir. Banlı olmayan hedef unban edilemez.
func CheckUnbanUser(actor, target *models.User) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if target == nil {
		return models.Reject(models.ReasonUserNotFound)
	}
	if !actor.AccessLevel.CanBanUser {
		return models.Reject(models.ReasonCannotBanUsers)
	}
	if !target.IsBanned {
		return models.Reject(models.ReasonNotBanned)
	}
	return models.Allow()
}

// CheckBanSong, actor'ın şarkıyı banlayıp banlayamayacağına karar verir.
func CheckBanSong(actor *models.User, song *models.Song) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if song == nil {
		return models.Reject(models.ReasonSongNotFound)
	}
	if song.IsBanned {
		return models.Reject(models.ReasonBanned)
	}
	if !actor.AccessLevel.CanBanSong {
		return models.Reject(models.ReasonCannotBanSongs)
	}
	return models.Allow()
}

// CheckUnbanSong, actor'ın şarkı banını kaldırıp kaldıramayacağına karar verir.
func CheckUnbanSong(actor *models.User, song *models.Song) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if song == nil {
		return models.Reject(models.ReasonSongNotFound)
	}
	if !actor.AccessLevel.CanBanSong {
		return models.Reject(models.ReasonCannotBanSongs)
	}
	if !song.IsBanned {
		return models.Reject(models.ReasonNotBanned)
	}
	return models.Allow()
}

// CheckBanCollection, actor'ın koleksiyonu banlayıp banlayamayacağına
// karar verir. Koleksiyon banı kendi yeteneğini kullanır (CanBanCollection) —
// şarkı yetkisi koleksiyona taşmaz.
func CheckBanCollection(actor *models.User, collection *models.Collection) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if collection == nil {
		return models.Reject(models.ReasonCollectionNotFound)
	}
	if collection.IsBanned {
		return models.Reject(models.ReasonBanned)
	}
	if !actor.AccessLevel.CanBanCollection {
		return models.Reject(models.ReasonCannotBanCollections)
	}
	return models.Allow()
}

// CheckUnbanCollection, actor'ın koleksiyon banını kaldırıp
// kaldıramayacağına karar verir.
func CheckUnbanCollection(actor *models.User, collection *models.Collection) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if collection == nil {
		return models.Reject(models.ReasonCollectionNotFound)
	}
	if !actor.AccessLevel.CanBanCollection {
		return models.Reject(models.ReasonCannotBanCollections)
	}
	if !collection.IsBanned {
		return models.Reject(models.ReasonNotBanned)
	}
	return models.Allow()
}

// CheckManageReports, actor'ın şikayetleri görüp çözebileceğine karar verir.
func CheckManageReports(actor *models.User) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if !actor.AccessLevel.CanManageReports {
		return models.Reject(models.ReasonCannotManageReports)
	}
	return models.Allow()
}

// CheckManageSupports, actor'ın destek taleplerini yönetebileceğine karar verir.
func CheckManageSupports(actor *models.User) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if !actor.AccessLevel.CanManageSupports {
		return models.Reject(models.ReasonCannotManageSupports)
	}
	return models.Allow()
}

// CheckDownload, actor'ın şarkıyı indirip indiremeyeceğine karar verir.
// Banlı şarkı kimse tarafından indirilemez — yetki kontrolünden önce gelir.
func CheckDownload(actor *models.User, song *models.Song) models.Decision {
	if d := CheckActor(actor); !d.Allowed() {
		return d
	}
	if song == nil {
		return models.Reject(models.ReasonSongNotFound)
	}
	if song.IsBanned {
		return models.Reject(models.ReasonBanned)
	}
	if !actor.AccessLevel.CanDownload {
		return models.Reject(models.ReasonCannotDownload)
	}
	return models.Allow()
}
