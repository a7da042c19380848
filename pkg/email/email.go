// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya iki şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendBanNotice, banlanan kullanıcıya ban sebebi ve bitiş zamanını
	// içeren bilgilendirme email'i gönderir. Email adresi olmayan
	// kullanıcılar için çağrılmaz.
	SendBanNotice(ctx context.Context, toEmail, reason string, until time.Time) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@melodi.app)
	appURL    string // Uygulamanın public URL'i (ör: https://app.melodi.app)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
// appURL: Uygulamanın public URL'i — email içindeki linklerde kullanılır.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendBanNotice, ban bilgilendirme email'i gönderir.
//
// Email içeriği:
// - Subject: "Your Account Has Been Suspended — melodi"
// - Body: Ban sebebi, bitiş zamanı ve destek linki içeren basit HTML
//
// Gönderim best-effort'tur: çağıran taraf hatayı loglar ama ban akışını
// geri almaz — email servisi down diye ban iptal edilmez.
func (s *resendSender) SendBanNotice(ctx context.Context, toEmail, reason string, until time.Time) error {
	supportLink := fmt.Sprintf("%s/support", s.appURL)
	untilText := until.UTC().Format("January 2, 2006 15:04 MST")

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#1a1a2e;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#1a1a2e;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#16213e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">melodi</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">Your Account Has Been Suspended</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 16px 0;">
                A moderator has temporarily suspended your account for the following reason:
              </p>
              <p style="color:#e2e8f0;font-size:15px;line-height:1.6;margin:0 0 24px 0;background-color:#0f3460;border-radius:6px;padding:16px;">
                %s
              </p>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                The suspension will be lifted automatically on <strong style="color:#e2e8f0;">%s</strong>.
              </p>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0;">
                If you believe this is a mistake, you can open a support ticket:<br>
                <a href="%s" style="color:#6366f1;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, reason, untilText, supportLink, supportLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("melodi <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Your Account Has Been Suspended — melodi",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send ban notice email: %w", err)
	}

	return nil
}
