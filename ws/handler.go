package ws

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/akinalp/melodi/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services.AuthService yerine kendi interface'imizi tanımlıyoruz — circular
// dependency önlenir: services paketi ws.EventPublisher kullanır, ws paketi
// services'i import etseydi döngü oluşurdu. main.go'da authService bu
// interface'i implicit olarak karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// BanChecker, handshake sırasında banlı kullanıcıyı reddetmek için kullanılır.
// Token geçerli olsa bile banlı kullanıcı bağlanamaz — access token ban'dan
// önce verilmiş olabilir.
type BanChecker interface {
	IsBanned(ctx context.Context, kind models.BanKind, targetID int64) (bool, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: Production'da domain kontrolü yapılmalı.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
	banChecker     BanChecker
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator, banChecker BanChecker) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
		banChecker:     banChecker,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// WebSocket bağlantısında HTTP header göndermek zordur (tarayıcı sınırlaması),
// token URL query parameter'ı olarak gönderilir:
//
//	ws://server/ws?token=JWT_TOKEN
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Banlı kullanıcı handshake'te reddedilir.
	banned, err := h.banChecker.IsBanned(r.Context(), models.BanKindUser, claims.UserID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if banned {
		http.Error(w, "account suspended", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for user %d: %v", claims.UserID, err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.UserID,
		send:   make(chan []byte, sendBufferSize),
	}

	h.hub.register <- client

	client.sendEvent(Event{Op: OpReady, Data: claims})

	// WritePump ayrı goroutine'de; ReadPump bu goroutine'de bloklar —
	// handler bağlantı kapanana kadar dönmez.
	go client.WritePump()
	client.ReadPump()
}
