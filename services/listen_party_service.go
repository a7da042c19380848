package services

import (
	"context"
	"fmt"
	"time"

	"github.com/livekit/protocol/auth"

	"github.com/akinalp/melodi/config"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

// ListenPartyService, bir koleksiyonu birlikte dinlemek için LiveKit odası
// token'ı üretir. Oda adı koleksiyona bağlıdır — aynı koleksiyona katılan
// herkes aynı odada buluşur.
type ListenPartyService interface {
	// JoinToken, actor için dinleme partisi LiveKit token'ı üretir.
	// Banlı kullanıcı katılamaz; banlı/silinmiş koleksiyonun partisi yoktur.
	JoinToken(ctx context.Context, collectionID, actorID int64) (*ListenPartyToken, error)
}

// ListenPartyToken, party'ye katılım için dönen token paketi.
type ListenPartyToken struct {
	Token        string `json:"token"`
	URL          string `json:"url"`
	CollectionID int64  `json:"collection_id"`
	Room         string `json:"room"`
}

type listenPartyService struct {
	collectionRepo repository.CollectionRepository
	userRepo       repository.UserRepository
	livekitCfg     config.LiveKitConfig
}

// NewListenPartyService, constructor.
func NewListenPartyService(
	collectionRepo repository.CollectionRepository,
	userRepo repository.UserRepository,
	livekitCfg config.LiveKitConfig,
) ListenPartyService {
	return &listenPartyService{
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
		livekitCfg:     livekitCfg,
	}
}

func (s *listenPartyService) JoinToken(ctx context.Context, collectionID, actorID int64) (*ListenPartyToken, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if d := CheckActor(actor); !d.Allowed() {
		return nil, decisionError(d)
	}

	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if collection.IsBanned {
		return nil, pkg.ErrNotFound
	}

	room := fmt.Sprintf("collection:%d", collectionID)

	// Dinleme partisinde herkes sadece subscribe eder; ses publish etmek
	// data channel üzerinden senkronizasyon mesajlarıyla sınırlıdır.
	canPublish := false
	canSubscribe := true
	canPublishData := true

	at := auth.NewAccessToken(s.livekitCfg.APIKey, s.livekitCfg.APISecret)

	grant := &auth.VideoGrant{
		RoomJoin:       true,
		Room:           room,
		CanPublish:     &canPublish,
		CanSubscribe:   &canSubscribe,
		CanPublishData: &canPublishData,
	}

	at.AddGrant(grant).
		SetIdentity(fmt.Sprintf("user:%d", actor.ID)).
		SetName(actor.Username).
		SetValidFor(6 * time.Hour)

	token, err := at.ToJWT()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listen party token: %w", err)
	}

	return &ListenPartyToken{
		Token:        token,
		URL:          s.livekitCfg.URL,
		CollectionID: collectionID,
		Room:         room,
	}, nil
}
