package services

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/ws"
)

// newTestDB, t.TempDir altında migration'ları uygulanmış gerçek bir SQLite
// veritabanı açar. Test bitince bağlantı kapanır.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// capturingHub, yayınlanan event'leri biriktiren test EventPublisher'ı.
type capturingHub struct {
	mu            sync.Mutex
	broadcasts    []ws.Event
	disconnected  []int64
	userBroadcast []int64
}

func (h *capturingHub) BroadcastToAll(event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcasts = append(h.broadcasts, event)
}

func (h *capturingHub) BroadcastToUser(userID int64, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userBroadcast = append(h.userBroadcast, userID)
}

func (h *capturingHub) DisconnectUser(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disconnected = append(h.disconnected, userID)
}

func (h *capturingHub) broadcastOps() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ops := make([]string, 0, len(h.broadcasts))
	for _, e := range h.broadcasts {
		ops = append(ops, e.Op)
	}
	return ops
}

// createTestUser, verilen erişim seviyesiyle kullanıcı oluşturur ve
// seviye JOIN'li halini döner.
func createTestUser(t *testing.T, db *database.DB, username string, accessLevelID int64) *models.User {
	t.Helper()

	users := repository.NewSQLiteUserRepo(db.Conn)
	user := &models.User{
		Username:      username,
		PasswordHash:  "x",
		AccessLevelID: accessLevelID,
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	loaded, err := users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to load user %s: %v", username, err)
	}
	return loaded
}

func createTestSong(t *testing.T, db *database.DB, ownerID int64, title string) *models.Song {
	t.Helper()

	songs := repository.NewSQLiteSongRepo(db.Conn)
	song := &models.Song{
		Title:       title,
		Artist:      "test artist",
		OwnerUserID: ownerID,
	}
	if err := songs.Create(context.Background(), song); err != nil {
		t.Fatalf("failed to create song %s: %v", title, err)
	}
	return song
}

func createTestCollection(t *testing.T, db *database.DB, ownerID int64, name string) *models.Collection {
	t.Helper()

	collections := repository.NewSQLiteCollectionRepo(db.Conn)
	collection := &models.Collection{
		Name:        name,
		OwnerUserID: ownerID,
	}
	if err := collections.Create(context.Background(), collection); err != nil {
		t.Fatalf("failed to create collection %s: %v", name, err)
	}
	return collection
}

// banRequest, gelecekte biten geçerli bir ban isteği üretir.
func banRequest(reason string, d time.Duration) *models.BanRequest {
	return &models.BanRequest{
		Reason:   reason,
		BanUntil: time.Now().UTC().Add(d),
	}
}
