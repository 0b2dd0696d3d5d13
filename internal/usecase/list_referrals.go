package usecase

import (
	"context"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

// ReferralQueryUseCase agrupa as leituras. Nada é cacheado.
type ReferralQueryUseCase struct {
	ReferralRepo ReferralRepositoryInterface
}

func NewReferralQueryUseCase(referralRepo ReferralRepositoryInterface) *ReferralQueryUseCase {
	return &ReferralQueryUseCase{ReferralRepo: referralRepo}
}

// List devolve as indicações da mais nova para a mais antiga. partnerID e
// status vazios não filtram.
func (uc *ReferralQueryUseCase) List(ctx context.Context, partnerID, status string) ([]*entity.Referral, error) {
	filter := entity.ReferralFilter{PartnerID: partnerID}
	if status != "" {
		s, err := entity.ParseReferralStatus(status)
		if err != nil {
			return nil, &DomainError{Code: CodeInvalidStatus, Message: "status inválido: " + status}
		}
		filter.Status = s
	}

	referrals, err := uc.ReferralRepo.List(ctx, filter)
	if err != nil {
		return nil, storeUnavailable("list referrals", err)
	}
	if referrals == nil {
		referrals = []*entity.Referral{}
	}
	return referrals, nil
}

func (uc *ReferralQueryUseCase) AdminSummary(ctx context.Context) (entity.ReferralSummary, error) {
	referrals, err := uc.ReferralRepo.List(ctx, entity.ReferralFilter{})
	if err != nil {
		return entity.ReferralSummary{}, storeUnavailable("list referrals", err)
	}
	return entity.SummarizeReferrals(referrals), nil
}

func (uc *ReferralQueryUseCase) PartnerDashboard(ctx context.Context, partnerID string) (entity.PartnerDashboard, error) {
	referrals, err := uc.ReferralRepo.List(ctx, entity.ReferralFilter{PartnerID: partnerID})
	if err != nil {
		return entity.PartnerDashboard{}, storeUnavailable("list referrals", err)
	}
	return entity.PartnerStats(referrals), nil
}
