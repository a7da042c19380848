// BanSweeper — süresi dolmuş ban kayıtlarını temizleyen periyodik arka plan
// servisi.
//
// Her turda ban_until <= now olan kayıtlar silinir. Bir kaydın hedefi,
// silme sonrası BAŞKA aktif kaydı kalmadıysa is_banned flag'i düşürülür —
// üst üste banlanmış hedef, bir kaydın süresi doldu diye serbest kalmaz.
//
// Kayıt + flag işlemleri hedef başına tek transaction'da yapılır; sweeper
// ile eş zamanlı çalışan bir moderasyon aksiyonu yarım durum göremez.
//
// Goroutine pattern: time.NewTicker + select + stopCh.
// Graceful shutdown: main.go'da sweeper.Stop() çağrılır.
package services

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/repository"
	"github.com/akinalp/melodi/ws"
)

// BanSweeper, periyodik ban temizleme interface'i.
type BanSweeper interface {
	// Start, sweeper goroutine'ini başlatır. İlk tarama hemen çalışır,
	// sonra interval aralığında tekrarlar.
	Start()

	// Stop, sweeper goroutine'ini durdurur.
	Stop()

	// SweepOnce, tek bir temizleme turu çalıştırır ve silinen kayıt
	// sayısını döner. Testlerde deterministik çağrı için exported.
	SweepOnce(ctx context.Context) (int, error)
}

type banSweeper struct {
	db       *sql.DB
	hub      ws.EventPublisher
	interval time.Duration

	stopCh chan struct{}
	mu     sync.Mutex // Start/Stop race koruması
}

// NewBanSweeper, constructor.
//
// interval: tarama aralığı (production: 10*time.Minute).
func NewBanSweeper(db *sql.DB, hub ws.EventPublisher, interval time.Duration) BanSweeper {
	return &banSweeper{
		db:       db,
		hub:      hub,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *banSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Printf("[ban-sweeper] starting (interval=%s)", s.interval)

	go func() {
		// İlk taramayı hemen yap — restart sonrası birikmiş expired
		// kayıtlar interval kadar beklemesin.
		s.sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				log.Println("[ban-sweeper] stopped")
				return
			}
		}
	}()
}

func (s *banSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.stopCh)
}

// sweep, bir SweepOnce turunu per-tur timeout ile çalıştırır.
func (s *banSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	removed, err := s.SweepOnce(ctx)
	if err != nil {
		log.Printf("[ban-sweeper] sweep error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[ban-sweeper] removed %d expired bans", removed)
	}
}

func (s *banSweeper) SweepOnce(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	// Expired listesi pool üzerinden okunur; her kayıt kendi
	// transaction'ında temizlenir. Tur uzun sürse bile DB kilidi hedef
	// başına kısa tutulur.
	expired, err := repository.NewSQLiteBanRepo(s.db).ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	removed := 0
	type liftedTarget struct {
		kind models.BanKind
		id   int64
	}
	// set — aynı hedefin birden fazla expired kaydı tek event üretir
	lifted := make(map[liftedTarget]bool)

	for i := range expired {
		ban := &expired[i]

		err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			bans := repository.NewSQLiteBanRepo(tx)

			if err := bans.Delete(ctx, ban.ID); err != nil {
				return err
			}

			// Hedefin başka aktif kaydı var mı? Varsa flag kalır.
			active, err := bans.HasActive(ctx, ban.Kind, ban.TargetID(), now)
			if err != nil {
				return err
			}
			if active {
				return nil
			}

			switch ban.Kind {
			case models.BanKindUser:
				return repository.NewSQLiteUserRepo(tx).SetBanned(ctx, ban.TargetID(), false)
			case models.BanKindSong:
				return repository.NewSQLiteSongRepo(tx).SetBanned(ctx, ban.TargetID(), false)
			case models.BanKindCollection:
				return repository.NewSQLiteCollectionRepo(tx).SetBanned(ctx, ban.TargetID(), false)
			default:
				return nil
			}
		})
		if err != nil {
			// Tek kayıt hatası turu durdurmaz — kalanlar denenir,
			// başarısız olan sonraki turda tekrar ele alınır.
			log.Printf("[ban-sweeper] failed to remove ban %d: %v", ban.ID, err)
			continue
		}

		removed++

		// Flag düştüyse unban event'i yayınlanır (commit sonrası).
		stillActive, err := repository.NewSQLiteBanRepo(s.db).HasActive(ctx, ban.Kind, ban.TargetID(), now)
		if err == nil && !stillActive {
			lifted[liftedTarget{kind: ban.Kind, id: ban.TargetID()}] = true
		}
	}

	for t := range lifted {
		var op string
		switch t.kind {
		case models.BanKindUser:
			op = ws.OpUserUnbanned
		case models.BanKindSong:
			op = ws.OpSongUnbanned
		case models.BanKindCollection:
			op = ws.OpCollectionUnbanned
		default:
			continue
		}
		s.hub.BroadcastToAll(ws.Event{
			Op:   op,
			Data: ws.BanEventData{Kind: t.kind.String(), TargetID: t.id},
		})
	}

	return removed, nil
}
