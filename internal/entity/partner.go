package entity

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RolePartner Role = "PARTNER"
	RoleAdmin   Role = "ADMIN"
)

type PartnerStatus string

const (
	PartnerPendingApproval PartnerStatus = "PENDING_APPROVAL"
	PartnerApproved        PartnerStatus = "APPROVED"
	PartnerRejected        PartnerStatus = "REJECTED"
)

// Entidade: Partner (usuário com papel PARTNER)
type Partner struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       PartnerStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	ApprovedAt   *time.Time    `json:"approved_at,omitempty"`
}

// Factory: todo cadastro nasce aguardando aprovação.
func NewPartner(name, email, phone, passwordHash string, now time.Time) *Partner {
	return &Partner{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         RolePartner,
		Status:       PartnerPendingApproval,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Partner) Approve(now time.Time) error {
	if p.Status != PartnerPendingApproval {
		return ErrInvalidTransition
	}
	p.Status = PartnerApproved
	p.UpdatedAt = now
	t := now
	p.ApprovedAt = &t
	return nil
}

func (p *Partner) Reject(now time.Time) error {
	if p.Status != PartnerPendingApproval {
		return ErrInvalidTransition
	}
	p.Status = PartnerRejected
	p.UpdatedAt = now
	return nil
}

// CanSignIn: parceiro recusado é tratado como não autenticado.
func (p *Partner) CanSignIn() bool {
	return p.Status == PartnerPendingApproval || p.Status == PartnerApproved
}

type PartnerRepositoryInterface interface {
	Create(ctx context.Context, p *Partner) error
	FindByID(ctx context.Context, id string) (*Partner, error)
	FindByEmail(ctx context.Context, email string) (*Partner, error)
	ListPending(ctx context.Context) ([]*Partner, error)
	// UpdateStatus persiste status, updated_at e approved_at já calculados.
	UpdateStatus(ctx context.Context, p *Partner) error
}
