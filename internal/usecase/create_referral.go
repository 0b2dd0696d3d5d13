package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

type CreateReferralUseCase struct {
	ReferralRepo ReferralRepositoryInterface
	PartnerRepo  PartnerRepositoryInterface
	Queue        QueueProducerInterface
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewCreateReferralUseCase(
	referralRepo ReferralRepositoryInterface,
	partnerRepo PartnerRepositoryInterface,
	queue QueueProducerInterface,
	logger *zap.Logger,
) *CreateReferralUseCase {
	return &CreateReferralUseCase{
		ReferralRepo: referralRepo,
		PartnerRepo:  partnerRepo,
		Queue:        queue,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (uc *CreateReferralUseCase) Execute(ctx context.Context, identity auth.Identity, input CreateReferralInput) (*CreateReferralOutput, error) {
	if errs := ValidateCreateReferralInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	partner, err := uc.PartnerRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrPartnerNotFound) {
			return nil, notFound(CodePartnerNotFound, "parceiro não encontrado")
		}
		return nil, storeUnavailable("find partner", err)
	}

	// O token pode estar defasado; a aprovação vale o que está no banco.
	if partner.Status != entity.PartnerApproved {
		return nil, &DomainError{
			Code:    CodePartnerNotApproved,
			Message: "parceiro ainda não aprovado para enviar indicações",
		}
	}

	converted, err := uc.ReferralRepo.CountConverted(ctx, partner.ID)
	if err != nil {
		return nil, storeUnavailable("count converted", err)
	}

	referral := entity.NewReferral(
		partner,
		strings.TrimSpace(input.CompanyName),
		entity.OnlyDigits(input.CNPJ),
		strings.TrimSpace(input.ContactName),
		entity.OnlyDigits(input.Phone),
		entity.NormalizeEmail(input.Email),
		entity.BonusForConversionCount(converted),
		uc.Now(),
	)

	if err := uc.ReferralRepo.Create(ctx, referral); err != nil {
		return nil, storeUnavailable("create referral", err)
	}

	tier := entity.TierFor(converted)
	uc.Logger.Info("indicação criada",
		zap.String("referral_id", referral.ID),
		zap.String("partner_id", partner.ID),
		zap.Int("converted_before", converted),
		zap.String("tier", tier.Name),
		zap.String("bonus", referral.BonusAmount.StringFixed(2)))

	uc.publish(ctx, queue.Event{
		Type:         queue.EventReferralCreated,
		ReferralID:   referral.ID,
		PartnerID:    partner.ID,
		PartnerName:  partner.Name,
		PartnerEmail: partner.Email,
		CompanyName:  referral.CompanyName,
		ContactName:  referral.ContactName,
		Phone:        referral.Phone,
		Email:        referral.Email,
		Status:       string(referral.Status),
		BonusAmount:  referral.BonusAmount.StringFixed(2),
		OccurredAt:   referral.CreatedAt,
	})

	return &CreateReferralOutput{
		Referral:        referral,
		Tier:            tier.Name,
		ConvertedBefore: converted,
	}, nil
}

// publish nunca falha a operação: a indicação já está gravada.
func (uc *CreateReferralUseCase) publish(ctx context.Context, event queue.Event) {
	if uc.Queue == nil {
		return
	}
	if err := uc.Queue.PublishEvent(ctx, event); err != nil {
		uc.Logger.Warn("indicação gravada, mas falha na fila",
			zap.String("type", string(event.Type)),
			zap.String("referral_id", event.ReferralID),
			zap.Error(err))
	}
}
