package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/ws"
)

func TestBanUser(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), hub, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour))
	if err != nil {
		t.Fatalf("BanUser error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("BanUser rejected: %s", decision.Reason())
	}

	// Flag ve canlı satırlar tutarlı olmalı.
	loaded, err := repository.NewSQLiteUserRepo(db.Conn).GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !loaded.IsBanned {
		t.Error("target is_banned flag not set")
	}

	banned, err := svc.IsBanned(ctx, models.BanKindUser, target.ID)
	if err != nil {
		t.Fatalf("IsBanned error: %v", err)
	}
	if !banned {
		t.Error("IsBanned = false after ban")
	}

	// Yan etkiler: broadcast + disconnect.
	ops := hub.broadcastOps()
	if len(ops) != 1 || ops[0] != ws.OpUserBanned {
		t.Errorf("broadcast ops = %v, want [%s]", ops, ws.OpUserBanned)
	}
	if len(hub.disconnected) != 1 || hub.disconnected[0] != target.ID {
		t.Errorf("disconnected = %v, want [%d]", hub.disconnected, target.ID)
	}
}

func TestBanUserRejections(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), hub, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	otherAdmin := createTestUser(t, db, "admin2", models.AdminAccessLevelID)
	member := createTestUser(t, db, "member", models.DefaultAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	tests := []struct {
		name       string
		targetID   int64
		actorID    int64
		wantReason models.RejectReason
	}{
		{"missing target", 99999, admin.ID, models.ReasonUserNotFound},
		{"missing actor", target.ID, 99999, models.ReasonUserNotFound},
		{"self ban", admin.ID, admin.ID, models.ReasonSameUser},
		{"capability missing", target.ID, member.ID, models.ReasonCannotBanUsers},
		{"target immune", otherAdmin.ID, admin.ID, models.ReasonTargetIsAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := svc.BanUser(ctx, tt.targetID, tt.actorID, banRequest("spam", time.Hour))
			if err != nil {
				t.Fatalf("BanUser error: %v", err)
			}
			if decision.Allowed() {
				t.Fatal("BanUser allowed, want rejection")
			}
			if decision.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", decision.Reason(), tt.wantReason)
			}
		})
	}

	// Reddedilen akışlar yazma yapmaz ve event yayınlamaz.
	if ops := hub.broadcastOps(); len(ops) != 0 {
		t.Errorf("broadcast ops after rejections = %v, want none", ops)
	}
	banned, err := svc.IsBanned(ctx, models.BanKindUser, target.ID)
	if err != nil {
		t.Fatalf("IsBanned error: %v", err)
	}
	if banned {
		t.Error("target banned after rejected attempts")
	}
}

func TestBanUserInvalidRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	tests := []struct {
		name string
		req  *models.BanRequest
	}{
		{"empty reason", &models.BanRequest{BanUntil: time.Now().UTC().Add(time.Hour)}},
		{"past ban_until", &models.BanRequest{Reason: "spam", BanUntil: time.Now().UTC().Add(-time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BanUser(ctx, target.ID, admin.ID, tt.req)
			if !errors.Is(err, pkg.ErrBadRequest) {
				t.Errorf("error = %v, want ErrBadRequest", err)
			}
		})
	}
}

func TestDoubleBanUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	if decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("first ban: decision=%v err=%v", decision, err)
	}

	decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("again", time.Hour))
	if err != nil {
		t.Fatalf("second ban error: %v", err)
	}
	if decision.Allowed() {
		t.Fatal("second ban allowed, want rejection")
	}
	if decision.Reason() != models.ReasonBanned {
		t.Errorf("Reason() = %s, want %s", decision.Reason(), models.ReasonBanned)
	}
}

func TestUnbanUser(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), hub, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	if decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("ban: decision=%v err=%v", decision, err)
	}

	decision, err := svc.UnbanUser(ctx, target.ID, admin.ID)
	if err != nil {
		t.Fatalf("UnbanUser error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("UnbanUser rejected: %s", decision.Reason())
	}

	loaded, err := repository.NewSQLiteUserRepo(db.Conn).GetByID(ctx, target.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded.IsBanned {
		t.Error("is_banned flag still set after unban")
	}

	// İkinci unban idempotent DEĞİLDİR — not_banned reddi döner.
	decision, err = svc.UnbanUser(ctx, target.ID, admin.ID)
	if err != nil {
		t.Fatalf("second UnbanUser error: %v", err)
	}
	if decision.Allowed() || decision.Reason() != models.ReasonNotBanned {
		t.Errorf("second unban: allowed=%v reason=%s, want not_banned rejection", decision.Allowed(), decision.Reason())
	}
}

func TestUnbanUserDeletesAllActiveRecords(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	// İkinci kaydı repo üzerinden ekle — üst üste banlı hedefi simüle eder.
	bans := repository.NewSQLiteBanRepo(db.Conn)
	now := time.Now().UTC()
	for _, d := range []time.Duration{time.Hour, 48 * time.Hour} {
		ban := &models.Ban{
			BannedByUserID: admin.ID,
			BannedUserID:   &target.ID,
			Kind:           models.BanKindUser,
			Reason:         "stacked",
			BanUntil:       now.Add(d),
			BannedAt:       now,
		}
		if err := bans.Create(ctx, ban); err != nil {
			t.Fatalf("ban create error: %v", err)
		}
	}
	if err := repository.NewSQLiteUserRepo(db.Conn).SetBanned(ctx, target.ID, true); err != nil {
		t.Fatalf("SetBanned error: %v", err)
	}

	decision, err := svc.UnbanUser(ctx, target.ID, admin.ID)
	if err != nil {
		t.Fatalf("UnbanUser error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("UnbanUser rejected: %s", decision.Reason())
	}

	banned, err := svc.IsBanned(ctx, models.BanKindUser, target.ID)
	if err != nil {
		t.Fatalf("IsBanned error: %v", err)
	}
	if banned {
		t.Error("target still banned — unban must delete ALL active records")
	}
}

func TestBanUserDeletesSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	sessions := repository.NewSQLiteSessionRepo(db.Conn)
	session := &models.Session{
		ID:        "test-session-1",
		UserID:    target.ID,
		TokenHash: "deadbeef",
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
	if err := sessions.Create(ctx, session); err != nil {
		t.Fatalf("session create error: %v", err)
	}

	if decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("ban: decision=%v err=%v", decision, err)
	}

	if _, err := sessions.GetByTokenHash(ctx, "deadbeef"); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("session lookup error = %v, want ErrNotFound — ban must revoke refresh tokens", err)
	}
}

func TestBanUserRefreshesStaleFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)

	// Flag set ama aktif ban satırı yok — sweeper gecikmiş gibi.
	// Karar, flag'e değil canlı satırlara göre verilmeli: ban kabul edilir.
	if err := repository.NewSQLiteUserRepo(db.Conn).SetBanned(ctx, target.ID, true); err != nil {
		t.Fatalf("SetBanned error: %v", err)
	}

	decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour))
	if err != nil {
		t.Fatalf("BanUser error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("BanUser rejected with stale flag: %s", decision.Reason())
	}
}

func TestBanSong(t *testing.T) {
	db := newTestDB(t)
	hub := &capturingHub{}
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), hub, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	owner := createTestUser(t, db, "owner", models.DefaultAccessLevelID)
	song := createTestSong(t, db, owner.ID, "banned track")

	decision, err := svc.BanSong(ctx, song.ID, admin.ID, banRequest("copyright", time.Hour))
	if err != nil {
		t.Fatalf("BanSong error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("BanSong rejected: %s", decision.Reason())
	}

	loaded, err := repository.NewSQLiteSongRepo(db.Conn).GetByID(ctx, song.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !loaded.IsBanned {
		t.Error("song is_banned flag not set")
	}

	// Banlı şarkı public listeden düşer.
	songs, err := repository.NewSQLiteSongRepo(db.Conn).List(ctx, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	for _, s := range songs {
		if s.ID == song.ID {
			t.Error("banned song still visible in list")
		}
	}

	if ops := hub.broadcastOps(); len(ops) != 1 || ops[0] != ws.OpSongBanned {
		t.Errorf("broadcast ops = %v, want [%s]", ops, ws.OpSongBanned)
	}
}

func TestBanCollection(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	owner := createTestUser(t, db, "owner", models.DefaultAccessLevelID)
	collection := createTestCollection(t, db, owner.ID, "mix")

	decision, err := svc.BanCollection(ctx, collection.ID, admin.ID, banRequest("abuse", time.Hour))
	if err != nil {
		t.Fatalf("BanCollection error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("BanCollection rejected: %s", decision.Reason())
	}

	decision, err = svc.UnbanCollection(ctx, collection.ID, admin.ID)
	if err != nil {
		t.Fatalf("UnbanCollection error: %v", err)
	}
	if !decision.Allowed() {
		t.Fatalf("UnbanCollection rejected: %s", decision.Reason())
	}

	loaded, err := repository.NewSQLiteCollectionRepo(db.Conn).GetByID(ctx, collection.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if loaded.IsBanned {
		t.Error("collection is_banned flag still set after unban")
	}
}

func TestLatestBans(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	target := createTestUser(t, db, "target", models.DefaultAccessLevelID)
	owner := createTestUser(t, db, "owner", models.DefaultAccessLevelID)
	song := createTestSong(t, db, owner.ID, "track")

	if decision, err := svc.BanUser(ctx, target.ID, admin.ID, banRequest("spam", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("ban user: decision=%v err=%v", decision, err)
	}
	if decision, err := svc.BanSong(ctx, song.ID, admin.ID, banRequest("copyright", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("ban song: decision=%v err=%v", decision, err)
	}

	details, err := svc.LatestBans(ctx, 10)
	if err != nil {
		t.Fatalf("LatestBans error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("LatestBans returned %d records, want 2", len(details))
	}

	for _, d := range details {
		if d.BannedBy != "admin" {
			t.Errorf("BannedBy = %q, want %q", d.BannedBy, "admin")
		}
	}

	// En yeni kayıt önce gelir.
	if details[0].Kind != models.BanKindSong.String() {
		t.Errorf("latest ban kind = %s, want %s", details[0].Kind, models.BanKindSong)
	}
	if details[0].TargetName != "track" {
		t.Errorf("TargetName = %q, want %q", details[0].TargetName, "track")
	}
}
