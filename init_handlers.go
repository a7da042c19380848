// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/melodi/handlers"
	"github.com/akinalp/melodi/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Moderation  *handlers.ModerationHandler
	Song        *handlers.SongHandler
	Collection  *handlers.CollectionHandler
	Report      *handlers.ReportHandler
	Support     *handlers.SupportHandler
	AccessLevel *handlers.AccessLevelHandler
	ListenParty *handlers.ListenPartyHandler
	WS          *ws.Handler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
//
// WS handler'ın ban kontrolü ModerationService üzerinden yapılır —
// handshake sırasında flag değil canlı ban satırları sorgulanır.
func initHandlers(svcs *Services, limiters *RateLimiters, hub *ws.Hub) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Moderation:  handlers.NewModerationHandler(svcs.Moderation),
		Song:        handlers.NewSongHandler(svcs.Song),
		Collection:  handlers.NewCollectionHandler(svcs.Collection),
		Report:      handlers.NewReportHandler(svcs.Report),
		Support:     handlers.NewSupportHandler(svcs.Support),
		AccessLevel: handlers.NewAccessLevelHandler(svcs.AccessLevel),
		ListenParty: handlers.NewListenPartyHandler(svcs.ListenParty),
		WS:          ws.NewHandler(hub, svcs.Auth, svcs.Moderation),
	}
}
