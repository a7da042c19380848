// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository pool bağlantısı (*sql.DB) alır ve interface döner.
// Ban akışları gibi transaction isteyen yerler bu instance'ları değil,
// service içinde tx-bound kurulan repo'ları kullanır.
package main

import (
	"database/sql"

	"github.com/akinalp/melodi/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Ban, vb.)
type Repositories struct {
	User        repository.UserRepository
	Session     repository.SessionRepository
	AccessLevel repository.AccessLevelRepository
	Song        repository.SongRepository
	Collection  repository.CollectionRepository
	Ban         repository.BanRepository
	Report      repository.ReportRepository
	Support     repository.SupportRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:        repository.NewSQLiteUserRepo(conn),
		Session:     repository.NewSQLiteSessionRepo(conn),
		AccessLevel: repository.NewSQLiteAccessLevelRepo(conn),
		Song:        repository.NewSQLiteSongRepo(conn),
		Collection:  repository.NewSQLiteCollectionRepo(conn),
		Ban:         repository.NewSQLiteBanRepo(conn),
		Report:      repository.NewSQLiteReportRepo(conn),
		Support:     repository.NewSQLiteSupportRepo(conn),
	}
}
