// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/akinalp/melodi/config"
	"github.com/akinalp/melodi/pkg/email"
	"github.com/akinalp/melodi/pkg/ratelimit"
	"github.com/akinalp/melodi/services"
	"github.com/akinalp/melodi/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth        services.AuthService
	Moderation  services.ModerationService
	Song        services.SongService
	Collection  services.CollectionService
	Report      services.ReportService
	Support     services.SupportService
	AccessLevel services.AccessLevelService
	ListenParty services.ListenPartyService
}

// RateLimiters, rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices, tüm service'leri, sweeper'ı ve rate limiter'ları oluşturur.
//
// db, ModerationService ve BanSweeper'a doğrudan geçer — ikisi de ban
// satırları ile is_banned flag'lerini aynı transaction içinde günceller.
func initServices(db *sql.DB, repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, services.BanSweeper, *RateLimiters) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY, RESEND_FROM or APP_URL not set)")
	}

	authService := services.NewAuthService(
		repos.User, repos.Session, repos.Ban,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	moderationService := services.NewModerationService(db, repos.Ban, hub, emailSender)
	songService := services.NewSongService(repos.Song, repos.User)
	collectionService := services.NewCollectionService(repos.Collection, repos.Song)
	reportService := services.NewReportService(repos.Report, repos.User, repos.Song, repos.Collection)
	supportService := services.NewSupportService(repos.Support, repos.User)
	accessLevelService := services.NewAccessLevelService(repos.AccessLevel, repos.User)
	listenPartyService := services.NewListenPartyService(repos.Collection, repos.User, cfg.LiveKit)

	sweeper := services.NewBanSweeper(
		db, hub,
		time.Duration(cfg.Moderation.SweepIntervalMinutes)*time.Minute,
	)

	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)

	svcs := &Services{
		Auth:        authService,
		Moderation:  moderationService,
		Song:        songService,
		Collection:  collectionService,
		Report:      reportService,
		Support:     supportService,
		AccessLevel: accessLevelService,
		ListenParty: listenPartyService,
	}

	limiters := &RateLimiters{Login: loginLimiter}

	return svcs, sweeper, limiters
}
