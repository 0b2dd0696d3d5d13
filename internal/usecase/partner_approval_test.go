package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/memory"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
	"github.com/xavierca1/tillit-parceiros/internal/usecase"
)

func validRegisterInput() usecase.RegisterPartnerInput {
	return usecase.RegisterPartnerInput{
		Name:     "Ana Lima",
		Email:    "Ana@Parceira.com",
		Phone:    "(11) 97777-6666",
		Password: "segredo123",
	}
}

func TestRegisterPartnerStartsPending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewPartnerUseCase(store.Partners(), nil, zap.NewNop())

	p, err := uc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, entity.PartnerPendingApproval, p.Status)
	assert.Equal(t, entity.RolePartner, p.Role)
	assert.Equal(t, "ana@parceira.com", p.Email)
	assert.Equal(t, "11977776666", p.Phone)
	assert.True(t, auth.CheckPasswordHash("segredo123", p.PasswordHash))

	_, err = uc.Register(ctx, validRegisterInput())
	assert.Equal(t, usecase.CodeEmailExists, usecase.ErrorCode(err))

	pending, err := uc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRegisterPartnerValidation(t *testing.T) {
	uc := usecase.NewPartnerUseCase(new(MockPartnerRepository), nil, zap.NewNop())

	in := validRegisterInput()
	in.Password = "curta"
	_, err := uc.Register(context.Background(), in)

	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}

func TestApprovePartner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	q := new(MockQueueProducer)
	q.On("PublishEvent", ctx, mock.MatchedBy(func(e queue.Event) bool {
		return e.Type == queue.EventPartnerApproved && e.PartnerEmail == "ana@parceira.com"
	})).Return(nil)

	uc := usecase.NewPartnerUseCase(store.Partners(), q, zap.NewNop())
	approvedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	uc.Now = func() time.Time { return approvedAt }

	p, err := uc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	out, err := uc.Approve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerApproved, out.Status)
	require.NotNil(t, out.ApprovedAt)
	assert.True(t, out.ApprovedAt.Equal(approvedAt))

	stored, err := store.Partners().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerApproved, stored.Status)

	// decisão é definitiva
	_, err = uc.Reject(ctx, p.ID)
	assert.Equal(t, usecase.CodeInvalidTransition, usecase.ErrorCode(err))

	q.AssertExpectations(t)
}

func TestRejectPartner(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	q := new(MockQueueProducer)
	q.On("PublishEvent", ctx, mock.MatchedBy(func(e queue.Event) bool {
		return e.Type == queue.EventPartnerRejected
	})).Return(nil)

	uc := usecase.NewPartnerUseCase(store.Partners(), q, zap.NewNop())
	p, err := uc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	out, err := uc.Reject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PartnerRejected, out.Status)
	assert.Nil(t, out.ApprovedAt)

	pending, err := uc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = uc.Approve(ctx, "nao-existe")
	assert.Equal(t, usecase.CodePartnerNotFound, usecase.ErrorCode(err))
}
