package models

import "testing"

func TestDecision(t *testing.T) {
	if !Allow().Allowed() {
		t.Error("Allow().Allowed() = false")
	}

	var zero Decision
	if !zero.Allowed() {
		t.Error("zero value Decision must be Allow")
	}

	d := Reject(ReasonCannotBanUsers)
	if d.Allowed() {
		t.Error("Reject(...).Allowed() = true")
	}
	if d.Reason() != ReasonCannotBanUsers {
		t.Errorf("Reason() = %v, want %v", d.Reason(), ReasonCannotBanUsers)
	}
}

// Wire kodları client sözleşmesidir — değişirse frontend lokalizasyonu kırılır.
func TestRejectReasonWireCodes(t *testing.T) {
	want := map[RejectReason]string{
		ReasonUserNotFound:         "user_not_found",
		ReasonSongNotFound:         "song_not_found",
		ReasonCollectionNotFound:   "collection_not_found",
		ReasonNoAccessLevel:        "no_access_level",
		ReasonBanned:               "banned",
		ReasonNotBanned:            "not_banned",
		ReasonSameUser:             "same_user",
		ReasonTargetIsAdmin:        "target_is_admin",
		ReasonCannotBanUsers:       "cannot_ban_users",
		ReasonCannotBanSongs:       "cannot_ban_songs",
		ReasonCannotBanCollections: "cannot_ban_collections",
		ReasonCannotManageReports:  "cannot_manage_reports",
		ReasonCannotManageSupports: "cannot_manage_supports",
		ReasonCannotDownload:       "cannot_download",
	}

	for reason, code := range want {
		if reason.String() != code {
			t.Errorf("%d.String() = %q, want %q", reason, reason.String(), code)
		}
	}

	if RejectReason(0).String() != "unknown" {
		t.Errorf("zero reason String() = %q, want %q", RejectReason(0).String(), "unknown")
	}
}
