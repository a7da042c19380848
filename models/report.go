package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Report, bir kullanıcının bir hedefi (user/şarkı/koleksiyon) şikayet
// etmesini temsil eder. Moderatörler raporları inceler ve çözer;
// gerekirse ModerationService üzerinden ban uygular.
type Report struct {
	ID             int64     `json:"id"`
	ReporterUserID int64     `json:"reporter_user_id"`
	Kind           BanKind   `json:"kind"`
	TargetID       int64     `json:"target_id"`
	Reason         string    `json:"reason"`
	Resolved       bool      `json:"resolved"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateReportRequest, şikayet oluşturma isteği.
type CreateReportRequest struct {
	Kind     string `json:"kind"` // "user", "song", "collection"
	TargetID int64  `json:"target_id"`
	Reason   string `json:"reason"`
}

// Validate, CreateReportRequest kontrolü.
func (r *CreateReportRequest) Validate() error {
	if _, err := ParseBanKind(r.Kind); err != nil {
		return err
	}
	if r.TargetID <= 0 {
		return fmt.Errorf("target_id is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	n := utf8.RuneCountInString(r.Reason)
	if n < 1 || n > 1000 {
		return fmt.Errorf("reason must be between 1 and 1000 characters")
	}
	return nil
}
