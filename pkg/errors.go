// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Sabit error değişkenleri ile karşılaştırma string yerine referans ile
// yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Dikkat: moderasyon policy redleri error DEĞİLDİR — onlar
// models.Decision olarak döner (bkz. models/decision.go). Buradaki
// error'lar altyapı ve genel request hataları içindir.
package pkg

import "errors"

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
