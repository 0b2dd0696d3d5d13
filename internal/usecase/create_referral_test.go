package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

func validReferralInput() usecase.CreateReferralInput {
	return usecase.CreateReferralInput{
		CompanyName: "Padaria Central",
		CNPJ:        "11.222.333/0001-81",
		ContactName: "Carlos Souza",
		Phone:       "(11) 98888-7777",
		Email:       "Carlos@Padaria.com ",
	}
}

func newCreateReferralUseCase(refs *MockReferralRepository, partners *MockPartnerRepository, q usecase.QueueProducerInterface) *usecase.CreateReferralUseCase {
	uc := usecase.NewCreateReferralUseCase(refs, partners, q, zap.NewNop())
	uc.Now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestCreateReferralBonusFollowsPriorConversions(t *testing.T) {
	tests := []struct {
		name      string
		converted int
		bonus     int64
		event     string
		tier      string
	}{
		{"quatro conversões ainda em Bronze", 4, 150, "150.00", "Bronze"},
		{"cinco conversões sobem para Prata", 5, 200, "200.00", "Prata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			partner := approvedPartner()

			refs := new(MockReferralRepository)
			partners := new(MockPartnerRepository)
			q := new(MockQueueProducer)

			partners.On("FindByID", ctx, partner.ID).Return(partner, nil)
			refs.On("CountConverted", ctx, partner.ID).Return(tt.converted, nil)
			refs.On("Create", ctx, mock.AnythingOfType("*entity.Referral")).
				Run(func(args mock.Arguments) { args.Get(1).(*entity.Referral).ID = "ref-novo" }).
				Return(nil)
			q.On("PublishEvent", ctx, mock.MatchedBy(func(e queue.Event) bool {
				return e.Type == queue.EventReferralCreated && e.ReferralID == "ref-novo" && e.BonusAmount == tt.event
			})).Return(nil)

			out, err := newCreateReferralUseCase(refs, partners, q).Execute(ctx, partnerIdentity(partner), validReferralInput())

			require.NoError(t, err)
			assert.True(t, out.Referral.BonusAmount.Equal(decimal.NewFromInt(tt.bonus)))
			assert.Equal(t, tt.tier, out.Tier)
			assert.Equal(t, tt.converted, out.ConvertedBefore)
			assert.Equal(t, entity.StatusPendente, out.Referral.Status)
			assert.Equal(t, "11222333000181", out.Referral.CNPJ)
			assert.Equal(t, "11988887777", out.Referral.Phone)
			assert.Equal(t, "carlos@padaria.com", out.Referral.Email)
			assert.Equal(t, partner.Name, out.Referral.PartnerName)
			assert.Nil(t, out.Referral.ImplementationPaidAt)

			refs.AssertExpectations(t)
			partners.AssertExpectations(t)
			q.AssertExpectations(t)
		})
	}
}

func TestCreateReferralBonusByTier(t *testing.T) {
	tests := []struct {
		converted int
		bonus     int64
	}{
		{0, 150},
		{4, 150},
		{5, 200},
		{9, 200},
		{10, 300},
		{42, 300},
	}

	for _, tt := range tests {
		ctx := context.Background()
		partner := approvedPartner()

		refs := new(MockReferralRepository)
		partners := new(MockPartnerRepository)

		partners.On("FindByID", ctx, partner.ID).Return(partner, nil)
		refs.On("CountConverted", ctx, partner.ID).Return(tt.converted, nil)
		refs.On("Create", ctx, mock.Anything).Return(nil)

		uc := usecase.NewCreateReferralUseCase(refs, partners, nil, zap.NewNop())
		out, err := uc.Execute(ctx, partnerIdentity(partner), validReferralInput())

		require.NoError(t, err)
		assert.Truef(t, out.Referral.BonusAmount.Equal(decimal.NewFromInt(tt.bonus)),
			"converted=%d bonus=%s", tt.converted, out.Referral.BonusAmount)
	}
}

func TestCreateReferralPartnerNotApproved(t *testing.T) {
	ctx := context.Background()
	partner := approvedPartner()
	partner.Status = entity.PartnerPendingApproval

	refs := new(MockReferralRepository)
	partners := new(MockPartnerRepository)
	partners.On("FindByID", ctx, partner.ID).Return(partner, nil)

	// token antigo dizendo APPROVED não vale: o banco manda
	identity := partnerIdentity(partner)
	identity.Status = entity.PartnerApproved

	_, err := newCreateReferralUseCase(refs, partners, nil).Execute(ctx, identity, validReferralInput())

	require.Error(t, err)
	assert.Equal(t, usecase.CodePartnerNotApproved, usecase.ErrorCode(err))
	refs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReferralValidationFailure(t *testing.T) {
	ctx := context.Background()
	refs := new(MockReferralRepository)
	partners := new(MockPartnerRepository)

	input := validReferralInput()
	input.CompanyName = "A"
	input.Email = "nao-e-email"

	_, err := newCreateReferralUseCase(refs, partners, nil).Execute(ctx, partnerIdentity(approvedPartner()), input)

	require.Error(t, err)
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	var de *usecase.DomainError
	require.True(t, errors.As(err, &de))
	fields := map[string]bool{}
	for _, f := range de.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["company_name"])
	assert.True(t, fields["email"])
	partners.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateReferralQueueFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	partner := approvedPartner()

	refs := new(MockReferralRepository)
	partners := new(MockPartnerRepository)
	q := new(MockQueueProducer)

	partners.On("FindByID", ctx, partner.ID).Return(partner, nil)
	refs.On("CountConverted", ctx, partner.ID).Return(0, nil)
	refs.On("Create", ctx, mock.Anything).Return(nil)
	q.On("PublishEvent", ctx, mock.Anything).Return(errors.New("amqp fora do ar"))

	out, err := newCreateReferralUseCase(refs, partners, q).Execute(ctx, partnerIdentity(partner), validReferralInput())

	require.NoError(t, err)
	assert.NotNil(t, out.Referral)
	q.AssertExpectations(t)
}

func TestCreateReferralStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	partner := approvedPartner()

	refs := new(MockReferralRepository)
	partners := new(MockPartnerRepository)
	partners.On("FindByID", ctx, partner.ID).Return(partner, nil)
	refs.On("CountConverted", ctx, partner.ID).Return(0, errors.New("connection refused"))

	_, err := newCreateReferralUseCase(refs, partners, nil).Execute(ctx, partnerIdentity(partner), validReferralInput())

	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Equal(t, usecase.CodeStoreUnavailable, usecase.ErrorCode(err))
}
