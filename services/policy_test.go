package services

import (
	"testing"

	"github.com/akinalp/melodi/models"
)

func moderator(id int64) *models.User {
	return &models.User{
		ID:       id,
		Username: "mod",
		AccessLevel: &models.AccessLevel{
			ID:               3,
			Name:             "moderator",
			CanBanUser:       true,
			CanBanSong:       true,
			CanBanCollection: true,
			CanDownload:      true,
		},
	}
}

func regular(id int64) *models.User {
	return &models.User{
		ID:       id,
		Username: "member",
		AccessLevel: &models.AccessLevel{
			ID:          1,
			Name:        "default",
			CanDownload: true,
			CanUpload:   true,
			CanReport:   true,
		},
	}
}

func TestCheckActor(t *testing.T) {
	tests := []struct {
		name       string
		actor      *models.User
		wantAllow  bool
		wantReason models.RejectReason
	}{
		{
			name:       "nil actor",
			actor:      nil,
			wantReason: models.ReasonUserNotFound,
		},
		{
			name: "banned actor",
			actor: func() *models.User {
				u := moderator(1)
				u.IsBanned = true
				return u
			}(),
			wantReason: models.ReasonBanned,
		},
		{
			name:       "actor without access level",
			actor:      &models.User{ID: 1, Username: "orphan"},
			wantReason: models.ReasonNoAccessLevel,
		},
		{
			name:      "healthy actor",
			actor:     regular(1),
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckActor(tt.actor)
			if d.Allowed() != tt.wantAllow {
				t.Fatalf("Allowed() = %v, want %v", d.Allowed(), tt.wantAllow)
			}
			if !tt.wantAllow && d.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", d.Reason(), tt.wantReason)
			}
		})
	}
}

func TestCheckBanUser(t *testing.T) {
	tests := []struct {
		name       string
		actor      *models.User
		target     *models.User
		wantAllow  bool
		wantReason models.RejectReason
	}{
		{
			name:      "moderator bans regular user",
			actor:     moderator(1),
			target:    regular(2),
			wantAllow: true,
		},
		{
			name:       "missing target",
			actor:      moderator(1),
			target:     nil,
			wantReason: models.ReasonUserNotFound,
		},
		{
			name:       "self ban",
			actor:      moderator(1),
			target:     moderator(1),
			wantReason: models.ReasonSameUser,
		},
		{
			name:  "target already banned",
			actor: moderator(1),
			target: func() *models.User {
				u := regular(2)
				u.IsBanned = true
				return u
			}(),
			wantReason: models.ReasonBanned,
		},
		{
			name:       "actor lacks capability",
			actor:      regular(1),
			target:     regular(2),
			wantReason: models.ReasonCannotBanUsers,
		},
		{
			name:       "target is also a moderator",
			actor:      moderator(1),
			target:     moderator(2),
			wantReason: models.ReasonTargetIsAdmin,
		},
		{
			name: "banned actor checked before target state",
			actor: func() *models.User {
				u := moderator(1)
				u.IsBanned = true
				return u
			}(),
			target:     nil,
			wantReason: models.ReasonBanned,
		},
		{
			// Kendini banlama kontrolü yetki kontrolünden önce gelir —
			// yetkisiz kullanıcının kendine denemesi same_user döner.
			name:       "self ban beats capability check",
			actor:      regular(1),
			target:     regular(1),
			wantReason: models.ReasonSameUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckBanUser(tt.actor, tt.target)
			if d.Allowed() != tt.wantAllow {
				t.Fatalf("Allowed() = %v, want %v (reason=%s)", d.Allowed(), tt.wantAllow, d.Reason())
			}
			if !tt.wantAllow && d.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", d.Reason(), tt.wantReason)
			}
		})
	}
}

func TestCheckUnbanUser(t *testing.T) {
	bannedTarget := regular(2)
	bannedTarget.IsBanned = true

	tests := []struct {
		name       string
		actor      *models.User
		target     *models.User
		wantAllow  bool
		wantReason models.RejectReason
	}{
		{
			name:      "moderator unbans banned user",
			actor:     moderator(1),
			target:    bannedTarget,
			wantAllow: true,
		},
		{
			name:       "target not banned",
			actor:      moderator(1),
			target:     regular(2),
			wantReason: models.ReasonNotBanned,
		},
		{
			name:       "actor lacks capability",
			actor:      regular(1),
			target:     bannedTarget,
			wantReason: models.ReasonCannotBanUsers,
		},
		{
			name:       "missing target",
			actor:      moderator(1),
			target:     nil,
			wantReason: models.ReasonUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckUnbanUser(tt.actor, tt.target)
			if d.Allowed() != tt.wantAllow {
				t.Fatalf("Allowed() = %v, want %v (reason=%s)", d.Allowed(), tt.wantAllow, d.Reason())
			}
			if !tt.wantAllow && d.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", d.Reason(), tt.wantReason)
			}
		})
	}
}

func TestCheckBanSong(t *testing.T) {
	tests := []struct {
		name       string
		actor      *models.User
		song       *models.Song
		wantAllow  bool
		wantReason models.RejectReason
	}{
		{
			name:      "moderator bans song",
			actor:     moderator(1),
			song:      &models.Song{ID: 10, Title: "track"},
			wantAllow: true,
		},
		{
			name:       "missing song",
			actor:      moderator(1),
			song:       nil,
			wantReason: models.ReasonSongNotFound,
		},
		{
			name:       "song already banned",
			actor:      moderator(1),
			song:       &models.Song{ID: 10, IsBanned: true},
			wantReason: models.ReasonBanned,
		},
		{
			name:       "actor lacks capability",
			actor:      regular(1),
			song:       &models.Song{ID: 10},
			wantReason: models.ReasonCannotBanSongs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckBanSong(tt.actor, tt.song)
			if d.Allowed() != tt.wantAllow {
				t.Fatalf("Allowed() = %v, want %v (reason=%s)", d.Allowed(), tt.wantAllow, d.Reason())
			}
			if !tt.wantAllow && d.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", d.Reason(), tt.wantReason)
			}
		})
	}
}

func TestCheckBanCollection(t *testing.T) {
	// Koleksiyon banı kendi yeteneğini kullanır — sadece CanBanSong
	// yetkisi olan aktör koleksiyon banlayamaz.
	songOnly := &models.User{
		ID:          1,
		Username:    "songmod",
		AccessLevel: &models.AccessLevel{ID: 4, Name: "songmod", CanBanSong: true},
	}

	d := CheckBanCollection(songOnly, &models.Collection{ID: 5, Name: "mix"})
	if d.Allowed() {
		t.Fatal("song-only moderator should not ban collections")
	}
	if d.Reason() != models.ReasonCannotBanCollections {
		t.Errorf("Reason() = %s, want %s", d.Reason(), models.ReasonCannotBanCollections)
	}

	if d := CheckBanCollection(moderator(1), &models.Collection{ID: 5}); !d.Allowed() {
		t.Errorf("moderator should ban collection, got reason %s", d.Reason())
	}
}

func TestCheckDownload(t *testing.T) {
	noDownload := &models.User{
		ID:          1,
		Username:    "restricted",
		AccessLevel: &models.AccessLevel{ID: 5, Name: "restricted"},
	}

	tests := []struct {
		name       string
		actor      *models.User
		song       *models.Song
		wantAllow  bool
		wantReason models.RejectReason
	}{
		{
			name:      "regular user downloads song",
			actor:     regular(1),
			song:      &models.Song{ID: 10},
			wantAllow: true,
		},
		{
			name:       "missing song",
			actor:      regular(1),
			song:       nil,
			wantReason: models.ReasonSongNotFound,
		},
		{
			// Banlı şarkı kontrolü yetki kontrolünden önce — indirme
			// yetkisi olmayan kullanıcı da banned görür.
			name:       "banned song",
			actor:      noDownload,
			song:       &models.Song{ID: 10, IsBanned: true},
			wantReason: models.ReasonBanned,
		},
		{
			name:       "no download capability",
			actor:      noDownload,
			song:       &models.Song{ID: 10},
			wantReason: models.ReasonCannotDownload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckDownload(tt.actor, tt.song)
			if d.Allowed() != tt.wantAllow {
				t.Fatalf("Allowed() = %v, want %v (reason=%s)", d.Allowed(), tt.wantAllow, d.Reason())
			}
			if !tt.wantAllow && d.Reason() != tt.wantReason {
				t.Errorf("Reason() = %s, want %s", d.Reason(), tt.wantReason)
			}
		})
	}
}

func TestCheckManageReports(t *testing.T) {
	manager := &models.User{
		ID:          1,
		Username:    "staff",
		AccessLevel: &models.AccessLevel{ID: 6, Name: "staff", CanManageReports: true},
	}

	if d := CheckManageReports(manager); !d.Allowed() {
		t.Errorf("manager should manage reports, got reason %s", d.Reason())
	}
	if d := CheckManageReports(regular(2)); d.Reason() != models.ReasonCannotManageReports {
		t.Errorf("Reason() = %s, want %s", d.Reason(), models.ReasonCannotManageReports)
	}
}
