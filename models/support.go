package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// SupportTicket durumları.
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

// SupportTicket, bir kullanıcının destek talebini temsil eder.
type SupportTicket struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Response  *string   `json:"response,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTicketRequest, destek talebi oluşturma isteği.
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate, CreateTicketRequest kontrolü.
func (r *CreateTicketRequest) Validate() error {
	r.Subject = strings.TrimSpace(r.Subject)
	n := utf8.RuneCountInString(r.Subject)
	if n < 1 || n > 200 {
		return fmt.Errorf("subject must be between 1 and 200 characters")
	}
	r.Body = strings.TrimSpace(r.Body)
	if r.Body == "" {
		return fmt.Errorf("body is required")
	}
	if utf8.RuneCountInString(r.Body) > 4000 {
		return fmt.Errorf("body must be at most 4000 characters")
	}
	return nil
}

// RespondTicketRequest, destek talebine yanıt isteği.
type RespondTicketRequest struct {
	Response string `json:"response"`
}

// Validate, RespondTicketRequest kontrolü.
func (r *RespondTicketRequest) Validate() error {
	r.Response = strings.TrimSpace(r.Response)
	if r.Response == "" {
		return fmt.Errorf("response is required")
	}
	if utf8.RuneCountInString(r.Response) > 4000 {
		return fmt.Errorf("response must be at most 4000 characters")
	}
	return nil
}
