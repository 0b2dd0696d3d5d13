package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/tillit-parceiros/internal/auth"
	"github.com/xavierca1/tillit-parceiros/internal/entity"
	"github.com/xavierca1/tillit-parceiros/internal/infra/queue"
)

// MockReferralRepository
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) Create(ctx context.Context, r *entity.Referral) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReferralRepository) FindByID(ctx context.Context, id string) (*entity.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Referral), args.Error(1)
}

func (m *MockReferralRepository) List(ctx context.Context, filter entity.ReferralFilter) ([]*entity.Referral, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Referral), args.Error(1)
}

func (m *MockReferralRepository) CountConverted(ctx context.Context, partnerID string) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockReferralRepository) UpdateStatus(ctx context.Context, id string, status entity.ReferralStatus, now time.Time) (*entity.Referral, error) {
	args := m.Called(ctx, id, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Referral), args.Error(1)
}

// MockPartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) Create(ctx context.Context, p *entity.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id string) (*entity.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByEmail(ctx context.Context, email string) (*entity.Partner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Partner), args.Error(1)
}

func (m *MockPartnerRepository) ListPending(ctx context.Context) ([]*entity.Partner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Partner), args.Error(1)
}

func (m *MockPartnerRepository) UpdateStatus(ctx context.Context, p *entity.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishEvent(ctx context.Context, event queue.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(identity auth.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func approvedPartner() *entity.Partner {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Partner{
		ID:         "partner-1",
		Name:       "Ana Lima",
		Email:      "ana@parceira.com",
		Role:       entity.RolePartner,
		Status:     entity.PartnerApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
		ApprovedAt: &now,
	}
}

func partnerIdentity(p *entity.Partner) auth.Identity {
	return auth.Identity{UserID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role, Status: p.Status}
}
