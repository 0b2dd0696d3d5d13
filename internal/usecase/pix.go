package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type PixUseCase struct {
	PixRepo PixRepositoryInterface
	Now     func() time.Time
}

func NewPixUseCase(pixRepo PixRepositoryInterface) *PixUseCase {
	return &PixUseCase{PixRepo: pixRepo, Now: time.Now}
}

// Save sobrescreve os dados de repasse do parceiro (sem histórico).
func (uc *PixUseCase) Save(ctx context.Context, identity auth.Identity, input SavePixInput) (*entity.PartnerPixData, error) {
	if errs := ValidateSavePixInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	keyType := entity.PixKeyType(strings.ToUpper(strings.TrimSpace(input.PixKeyType)))
	data := entity.NewPartnerPixData(identity.UserID, identity.Name, keyType, input.PixKey, input.AccountHolder, uc.Now())

	if err := uc.PixRepo.Save(ctx, data); err != nil {
		return nil, storeUnavailable("save pix", err)
	}
	return data, nil
}

func (uc *PixUseCase) Get(ctx context.Context, partnerID string) (*entity.PartnerPixData, error) {
	data, err := uc.PixRepo.FindByPartnerID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, entity.ErrPixNotFound) {
			return nil, notFound(CodePixNotFound, "parceiro ainda não cadastrou chave PIX")
		}
		return nil, storeUnavailable("find pix", err)
	}
	return data, nil
}

// GetBatch omite parceiros sem chave cadastrada.
func (uc *PixUseCase) GetBatch(ctx context.Context, partnerIDs []string) (map[string]*entity.PartnerPixData, error) {
	ids := make([]string, 0, len(partnerIDs))
	seen := make(map[string]bool, len(partnerIDs))
	for _, id := range partnerIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return map[string]*entity.PartnerPixData{}, nil
	}

	out, err := uc.PixRepo.FindByPartnerIDs(ctx, ids)
	if err != nil {
		return nil, storeUnavailable("find pix batch", err)
	}
	return out, nil
}
