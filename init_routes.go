// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ı:
//   - auth: JWT token doğrulaması + taze kullanıcı yüklemesi
//
// Yetki kontrolü route katmanında DEĞİL service katmanındadır — her
// operasyon kendi policy kontrolünü yapar ve redler sabit reason
// kodlarıyla döner. Route'lar sadece "kim olduğunu" doğrular.
package main

import (
	"net/http"

	"github.com/akinalp/melodi/middleware"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/moderation/bans" → "/api/moderation/{kind}/{id}/status"
// ile çakışmaz ama kural gereği önce yazıldı.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("PUT /api/users/{id}/access-level", auth(h.AccessLevel.AssignToUser))

	// Songs
	mux.Handle("GET /api/songs", auth(h.Song.List))
	mux.Handle("POST /api/songs", auth(h.Song.Create))
	mux.Handle("GET /api/songs/{id}", auth(h.Song.Get))
	mux.Handle("POST /api/songs/{id}/download", auth(h.Song.Download))

	// Collections
	mux.Handle("GET /api/collections", auth(h.Collection.ListMine))
	mux.Handle("POST /api/collections", auth(h.Collection.Create))
	mux.Handle("GET /api/collections/{id}", auth(h.Collection.Get))
	mux.Handle("POST /api/collections/{id}/songs", auth(h.Collection.AddSong))
	mux.Handle("DELETE /api/collections/{id}/songs/{songID}", auth(h.Collection.RemoveSong))
	mux.Handle("POST /api/collections/{id}/party", auth(h.ListenParty.Join))

	// Moderation — ban/unban + feed + durum sorgusu
	mux.Handle("GET /api/moderation/bans", auth(h.Moderation.LatestBans))
	mux.Handle("POST /api/moderation/users/{id}/ban", auth(h.Moderation.BanUser))
	mux.Handle("DELETE /api/moderation/users/{id}/ban", auth(h.Moderation.UnbanUser))
	mux.Handle("POST /api/moderation/songs/{id}/ban", auth(h.Moderation.BanSong))
	mux.Handle("DELETE /api/moderation/songs/{id}/ban", auth(h.Moderation.UnbanSong))
	mux.Handle("POST /api/moderation/collections/{id}/ban", auth(h.Moderation.BanCollection))
	mux.Handle("DELETE /api/moderation/collections/{id}/ban", auth(h.Moderation.UnbanCollection))
	mux.Handle("GET /api/moderation/{kind}/{id}/status", auth(h.Moderation.BanStatus))

	// Reports
	mux.Handle("POST /api/reports", auth(h.Report.Create))
	mux.Handle("GET /api/reports", auth(h.Report.ListOpen))
	mux.Handle("POST /api/reports/{id}/resolve", auth(h.Report.Resolve))

	// Support
	mux.Handle("POST /api/support", auth(h.Support.Create))
	mux.Handle("GET /api/support", auth(h.Support.Mine))
	mux.Handle("GET /api/support/open", auth(h.Support.ListOpen))
	mux.Handle("POST /api/support/{id}/respond", auth(h.Support.Respond))

	// Access Levels
	mux.Handle("GET /api/access-levels", auth(h.AccessLevel.List))
	mux.Handle("POST /api/access-levels", auth(h.AccessLevel.Create))
	mux.Handle("PUT /api/access-levels/{id}", auth(h.AccessLevel.Update))
	mux.Handle("DELETE /api/access-levels/{id}", auth(h.AccessLevel.Delete))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token + ban doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
