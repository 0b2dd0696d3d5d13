package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

type ReferralRepositoryInterface = entity.ReferralRepositoryInterface

type PartnerRepositoryInterface = entity.PartnerRepositoryInterface

type PixRepositoryInterface = entity.PixRepositoryInterface

type QueueProducerInterface interface {
	PublishEvent(ctx context.Context, event queue.Event) error
}

type TokenIssuer interface {
	Issue(identity auth.Identity) (string, time.Time, error)
}
