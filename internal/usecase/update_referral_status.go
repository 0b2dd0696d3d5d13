package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

// UpdateReferralStatusUseCase é o setStatus do painel admin. Sem controle de
// concorrência: a última escrita vence.
type UpdateReferralStatusUseCase struct {
	ReferralRepo ReferralRepositoryInterface
	PartnerRepo  PartnerRepositoryInterface
	Queue        QueueProducerInterface
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewUpdateReferralStatusUseCase(
	referralRepo ReferralRepositoryInterface,
	partnerRepo PartnerRepositoryInterface,
	queue QueueProducerInterface,
	logger *zap.Logger,
) *UpdateReferralStatusUseCase {
	return &UpdateReferralStatusUseCase{
		ReferralRepo: referralRepo,
		PartnerRepo:  partnerRepo,
		Queue:        queue,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (uc *UpdateReferralStatusUseCase) Execute(ctx context.Context, input UpdateReferralStatusInput) (*entity.Referral, error) {
	status, err := entity.ParseReferralStatus(input.Status)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeInvalidStatus,
			Message: "status deve ser PENDENTE, EM_NEGOCIACAO, CONVERTIDA ou PAGO",
		}
	}

	referral, err := uc.ReferralRepo.UpdateStatus(ctx, input.ReferralID, status, uc.Now())
	if err != nil {
		if errors.Is(err, entity.ErrReferralNotFound) {
			return nil, notFound(CodeReferralNotFound, "indicação não encontrada")
		}
		return nil, storeUnavailable("update referral status", err)
	}

	uc.Logger.Info("status da indicação alterado",
		zap.String("referral_id", referral.ID),
		zap.String("status", string(referral.Status)))

	uc.notifyPartner(ctx, referral)

	return referral, nil
}

func (uc *UpdateReferralStatusUseCase) notifyPartner(ctx context.Context, referral *entity.Referral) {
	if uc.Queue == nil {
		return
	}

	event := queue.Event{
		Type:        queue.EventReferralStatusChanged,
		ReferralID:  referral.ID,
		PartnerID:   referral.PartnerID,
		PartnerName: referral.PartnerName,
		CompanyName: referral.CompanyName,
		Status:      referral.Status.Label(),
		BonusAmount: referral.BonusAmount.StringFixed(2),
		OccurredAt:  referral.UpdatedAt,
	}

	partner, err := uc.PartnerRepo.FindByID(ctx, referral.PartnerID)
	if err != nil {
		uc.Logger.Warn("parceiro da indicação não encontrado, notificação sem e-mail",
			zap.String("partner_id", referral.PartnerID),
			zap.Error(err))
	} else {
		event.PartnerEmail = partner.Email
	}

	if err := uc.Queue.PublishEvent(ctx, event); err != nil {
		uc.Logger.Warn("status alterado, mas falha na fila",
			zap.String("referral_id", referral.ID),
			zap.Error(err))
	}
}
