package services

import (
	"context"
	"testing"
	"time"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/ws"
)

// insertBan, repo üzerinden doğrudan ban satırı yazar — süresi geçmiş
// kayıtlar da yazılabilir (request validasyonu burada devrede değildir).
func insertBan(t *testing.T, bans repository.BanRepository, byID int64, kind models.BanKind, targetID int64, until time.Time) {
	t.Helper()

	ban := &models.Ban{
		BannedByUserID: byID,
		Kind:           kind,
		Reason:         "test",
		BanUntil:       until,
		BannedAt:       time.Now().UTC().Add(-time.Hour),
	}
	switch kind {
	case models.BanKindUser:
		ban.BannedUserID = &targetID
	case models.BanKindSong:
		ban.BannedSongID = &targetID
	case models.BanKindCollection:
		ban.BannedCollectionID = &targetID
	}

	if err := bans.Create(context.Background(), ban); err != nil {
		t.Fatalf("failed to insert ban: %v", err)
	}
}

func TestSweepOnceRemovesExpiredBans(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	sweeper := NewBanSweeper(db.Conn, hub, time.Minute)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	bans := repository.NewSQLiteBanRepo(db.Conn)
	users := repository.NewSQLiteUserRepo(db.Conn)

	insertBan(t, bans, admin.ID, models.BanKindUser, target.ID, time.Now().UTC().Add(-time.Minute))
	if err := users.SetBanned(ctx, target.ID, true); err != nil {
		t.Fatalf("SetBanned error: %v", err)
	}

	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	loaded, err := users.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded.IsBanned {
		t.Error("is_banned flag still set after sweep")
	}

	if ops := hub.broadcastOps(); len(ops) != 1 || ops[0] != ws.OpUserUnbanned {
		t.Errorf("broadcast ops = %v, want [%s]", ops, ws.OpUserUnbanned)
	}

	// İkinci tur temiz DB'de hiçbir şey silmez.
	removed, err = sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("second SweepOnce error: %v", err)
	}
	if removed != 0 {
		t.Errorf("second sweep removed = %d, want 0", removed)
	}
}

func TestSweepOnceKeepsStackedBan(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	sweeper := NewBanSweeper(db.Conn, hub, time.Minute)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	bans := repository.NewSQLiteBanRepo(db.Conn)
	users := repository.NewSQLiteUserRepo(db.Conn)

	// Bir kayıt süresi geçmiş, biri hâlâ aktif — hedef banlı kalmalı.
	insertBan(t, bans, admin.ID, models.BanKindUser, target.ID, time.Now().UTC().Add(-time.Minute))
	insertBan(t, bans, admin.ID, models.BanKindUser, target.ID, time.Now().UTC().Add(24*time.Hour))
	if err := users.SetBanned(ctx, target.ID, true); err != nil {
		t.Fatalf("SetBanned error: %v", err)
	}

	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	loaded, err := users.GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !loaded.IsBanned {
		t.Error("stacked ban lifted — flag must survive while another record is active")
	}

	if ops := hub.broadcastOps(); len(ops) != 0 {
		t.Errorf("broadcast ops = %v, want none while ban still active", ops)
	}
}

func TestSweepOnceMixedKinds(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	sweeper := NewBanSweeper(db.Conn, hub, time.Minute)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	owner := createTestUser(t, db, "owner", models.DefaultAccessLevelID)
	song := createTestSong(t, db, owner.ID, "track")
	collection := createTestCollection(t, db, owner.ID, "mix")

	bans := repository.NewSQLiteBanRepo(db.Conn)
	songs := repository.NewSQLiteSongRepo(db.Conn)
	collections := repository.NewSQLiteCollectionRepo(db.Conn)

	expired := time.Now().UTC().Add(-time.Minute)
	insertBan(t, bans, admin.ID, models.BanKindSong, song.ID, expired)
	insertBan(t, bans, admin.ID, models.BanKindCollection, collection.ID, expired)
	if err := songs.SetBanned(ctx, song.ID, true); err != nil {
		t.Fatalf("SetBanned song error: %v", err)
	}
	if err := collections.SetBanned(ctx, collection.ID, true); err != nil {
		t.Fatalf("SetBanned collection error: %v", err)
	}

	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	loadedSong, err := songs.GetByID(ctx, song.ID)
	if err != nil {
		t.Fatalf("GetByID song error: %v", err)
	}
	if loadedSong.IsBanned {
		t.Error("song flag still set after sweep")
	}

	loadedCollection, err := collections.GetByID(ctx, collection.ID)
	if err != nil {
		t.Fatalf("GetByID collection error: %v", err)
	}
	if loadedCollection.IsBanned {
		t.Error("collection flag still set after sweep")
	}

	ops := hub.broadcastOps()
	if len(ops) != 2 {
		t.Fatalf("broadcast ops = %v, want 2 unban events", ops)
	}
	seen := map[string]bool{}
	for _, op := range ops {
		seen[op] = true
	}
	if !seen[ws.OpSongUnbanned] || !seen[ws.OpCollectionUnbanned] {
		t.Errorf("broadcast ops = %v, want song and collection unban events", ops)
	}
}

func TestSweepOnceDeduplicatesEvents(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	sweeper := NewBanSweeper(db.Conn, hub, time.Minute)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	bans := repository.NewSQLiteBanRepo(db.Conn)

	// Aynı hedefin iki expired kaydı — tek unban event'i beklenir.
	expired := time.Now().UTC().Add(-time.Minute)
	insertBan(t, bans, admin.ID, models.BanKindUser, target.ID, expired)
	insertBan(t, bans, admin.ID, models.BanKindUser, target.ID, expired)
	if err := repository.NewSQLiteUserRepo(db.Conn).SetBanned(ctx, target.ID, true); err != nil {
		t.Fatalf("SetBanned error: %v", err)
	}

	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		t.Fatalf("SweepOnce error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	if ops := hub.broadcastOps(); len(ops) != 1 || ops[0] != ws.OpUserUnbanned {
		t.Errorf("broadcast ops = %v, want exactly one %s", ops, ws.OpUserUnbanned)
	}
}

func TestSweeperStartStop(t *testing.T) {
	db := newTestDB(t)
	sweeper := NewBanSweeper(db.Conn, &capturingHub{}, time.Hour)

	sweeper.Start()
	// Start ilk taramayı hemen tetikler; Stop goroutine'i kapatır.
	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()
}
