package models

import (
	"strings"
	"testing"
	"time"
)

func TestBanRequestValidate(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)

	tests := []struct {
		name    string
		req     BanRequest
		wantErr bool
	}{
		{"valid", BanRequest{Reason: "spam", BanUntil: future}, false},
		{"empty reason", BanRequest{BanUntil: future}, true},
		{"reason too long", BanRequest{Reason: strings.Repeat("a", MaxBanReasonLen+1), BanUntil: future}, true},
		{"reason at limit", BanRequest{Reason: strings.Repeat("a", MaxBanReasonLen), BanUntil: future}, false},
		{"past ban_until", BanRequest{Reason: "spam", BanUntil: time.Now().UTC().Add(-time.Minute)}, true},
		{"zero ban_until", BanRequest{Reason: "spam"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseBanKind(t *testing.T) {
	tests := []struct {
		in      string
		want    BanKind
		wantErr bool
	}{
		{"user", BanKindUser, false},
		{"song", BanKindSong, false},
		{"collection", BanKindCollection, false},
		{"users", 0, true},
		{"", 0, true},
		{"USER", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBanKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBanKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBanKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBanKindRoundTrip(t *testing.T) {
	for _, kind := range []BanKind{BanKindUser, BanKindSong, BanKindCollection} {
		parsed, err := ParseBanKind(kind.String())
		if err != nil {
			t.Fatalf("ParseBanKind(%s) error: %v", kind, err)
		}
		if parsed != kind {
			t.Errorf("round trip %v → %s → %v", kind, kind, parsed)
		}
	}
}

func TestBanTargetID(t *testing.T) {
	id := int64(42)

	tests := []struct {
		name string
		ban  Ban
		want int64
	}{
		{"user target", Ban{BannedUserID: &id, Kind: BanKindUser}, 42},
		{"song target", Ban{BannedSongID: &id, Kind: BanKindSong}, 42},
		{"collection target", Ban{BannedCollectionID: &id, Kind: BanKindCollection}, 42},
		{"no target", Ban{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ban.TargetID(); got != tt.want {
				t.Errorf("TargetID() = %d, want %d", got, tt.want)
			}
		})
	}
}
