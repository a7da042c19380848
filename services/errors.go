package services

import (
	"fmt"

	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
)

// decisionError, policy reddini domain error'a çevirir.
//
// Moderasyon endpoint'leri Decision'ı olduğu gibi handler'a taşır (reason
// kodu client'a gider); ban akışı DIŞINDAKİ service'ler (download, rapor
// yönetimi vb.) ise normal error sözleşmesini kullanır — bu helper köprüdür.
func decisionError(d models.Decision) error {
	if d.Allowed() {
		return nil
	}

	switch d.Reason() {
	case models.ReasonUserNotFound, models.ReasonSongNotFound, models.ReasonCollectionNotFound:
		return fmt.Errorf("%w: %s", pkg.ErrNotFound, d.Reason())
	default:
		return fmt.Errorf("%w: %s", pkg.ErrForbidden, d.Reason())
	}
}
