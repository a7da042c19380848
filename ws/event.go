// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Moderasyon akışı:
// 1. Moderatör ban uygular → HTTP → ModerationService → DB commit
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır (ör. song_banned)
// 3. Banlanan kullanıcının tüm bağlantıları DisconnectUser ile düşürülür
// 4. Diğer client'lar event'i alır ve listelerinden banlı içeriği temizler
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü — "user_banned", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound event'e verilen artan sayı — client eksik event
// tespiti için takip eder.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client periyodik gönderir — "hâlâ bağlıyım" sinyali
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	// Moderasyon event'leri — ban/unban sonrası broadcast edilir.
	OpUserBanned         = "user_banned"
	OpUserUnbanned       = "user_unbanned"
	OpSongBanned         = "song_banned"
	OpSongUnbanned       = "song_unbanned"
	OpCollectionBanned   = "collection_banned"
	OpCollectionUnbanned = "collection_unbanned"

	// ForceDisconnect, bağlantı sunucu tarafından kapatılmadan hemen önce
	// gönderilir — client yeniden bağlanmayı denememesi gerektiğini anlar.
	OpForceDisconnect = "force_disconnect"
)

// BanEventData, moderasyon event'lerinin payload'u.
type BanEventData struct {
	Kind     string `json:"kind"`
	TargetID int64  `json:"target_id"`
	Reason   string `json:"reason,omitempty"`
}
