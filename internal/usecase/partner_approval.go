package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

type PartnerUseCase struct {
	PartnerRepo PartnerRepositoryInterface
	Queue       QueueProducerInterface
	Logger      *zap.Logger
	Now         func() time.Time
}

func NewPartnerUseCase(partnerRepo PartnerRepositoryInterface, queue QueueProducerInterface, logger *zap.Logger) *PartnerUseCase {
	return &PartnerUseCase{
		PartnerRepo: partnerRepo,
		Queue:       queue,
		Logger:      logger,
		Now:         time.Now,
	}
}

// Register cria o pedido de parceria (PENDING_APPROVAL).
func (uc *PartnerUseCase) Register(ctx context.Context, input RegisterPartnerInput) (*entity.Partner, error) {
	if errs := ValidateRegisterPartnerInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	existing, err := uc.PartnerRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, entity.ErrPartnerNotFound) {
		return nil, storeUnavailable("find partner by email", err)
	}
	if existing != nil {
		return nil, &DomainError{Code: CodeEmailExists, Message: "já existe um cadastro com este e-mail"}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "falha ao proteger a senha", Err: err}
	}

	partner := entity.NewPartner(input.Name, input.Email, entity.OnlyDigits(input.Phone), hash, uc.Now())

	if err := uc.PartnerRepo.Create(ctx, partner); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: CodeEmailExists, Message: "já existe um cadastro com este e-mail"}
		}
		return nil, storeUnavailable("create partner", err)
	}

	uc.Logger.Info("pedido de parceria recebido",
		zap.String("partner_id", partner.ID),
		zap.String("email", partner.Email))

	return partner, nil
}

func (uc *PartnerUseCase) FindByEmail(ctx context.Context, email string) (*entity.Partner, error) {
	partner, err := uc.PartnerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrPartnerNotFound) {
			return nil, notFound(CodePartnerNotFound, "parceiro não encontrado")
		}
		return nil, storeUnavailable("find partner by email", err)
	}
	return partner, nil
}

func (uc *PartnerUseCase) ListPending(ctx context.Context) ([]*entity.Partner, error) {
	partners, err := uc.PartnerRepo.ListPending(ctx)
	if err != nil {
		return nil, storeUnavailable("list pending partners", err)
	}
	if partners == nil {
		partners = []*entity.Partner{}
	}
	return partners, nil
}

func (uc *PartnerUseCase) Approve(ctx context.Context, id string) (*entity.Partner, error) {
	return uc.decide(ctx, id, true)
}

func (uc *PartnerUseCase) Reject(ctx context.Context, id string) (*entity.Partner, error) {
	return uc.decide(ctx, id, false)
}

func (uc *PartnerUseCase) decide(ctx context.Context, id string, approve bool) (*entity.Partner, error) {
	partner, err := uc.PartnerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrPartnerNotFound) {
			return nil, notFound(CodePartnerNotFound, "parceiro não encontrado")
		}
		return nil, storeUnavailable("find partner", err)
	}

	now := uc.Now()
	eventType := queue.EventPartnerApproved
	if approve {
		err = partner.Approve(now)
	} else {
		err = partner.Reject(now)
		eventType = queue.EventPartnerRejected
	}
	if err != nil {
		return nil, &DomainError{
			Code:    CodeInvalidTransition,
			Message: "parceiro já avaliado (status " + string(partner.Status) + ")",
		}
	}

	if err := uc.PartnerRepo.UpdateStatus(ctx, partner); err != nil {
		if errors.Is(err, entity.ErrPartnerNotFound) {
			return nil, notFound(CodePartnerNotFound, "parceiro não encontrado")
		}
		return nil, storeUnavailable("update partner status", err)
	}

	uc.Logger.Info("pedido de parceria avaliado",
		zap.String("partner_id", partner.ID),
		zap.String("status", string(partner.Status)))

	if uc.Queue != nil {
		event := queue.Event{
			Type:         eventType,
			PartnerID:    partner.ID,
			PartnerName:  partner.Name,
			PartnerEmail: partner.Email,
			Status:       string(partner.Status),
			OccurredAt:   now,
		}
		if err := uc.Queue.PublishEvent(ctx, event); err != nil {
			uc.Logger.Warn("parceiro avaliado, mas falha na fila",
				zap.String("partner_id", partner.ID),
				zap.Error(err))
		}
	}

	return partner, nil
}
