// Package memory guarda indicações, parceiros e chaves PIX em memória.
// Usado quando DATABASE_URL não está configurado e nos testes.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type Store struct {
	mu        sync.RWMutex
	referrals map[string]*entity.Referral
	partners  map[string]*entity.Partner
	pix       map[string]*entity.PartnerPixData
}

func NewStore() *Store {
	return &Store{
		referrals: make(map[string]*entity.Referral),
		partners:  make(map[string]*entity.Partner),
		pix:       make(map[string]*entity.PartnerPixData),
	}
}

func (s *Store) Referrals() *ReferralRepository { return &ReferralRepository{s} }
func (s *Store) Partners() *PartnerRepository   { return &PartnerRepository{s} }
func (s *Store) Pix() *PixRepository            { return &PixRepository{s} }

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneReferral(r *entity.Referral) *entity.Referral {
	c := *r
	c.ImplementationPaidAt = copyTime(r.ImplementationPaidAt)
	c.PaidAt = copyTime(r.PaidAt)
	return &c
}

func clonePartner(p *entity.Partner) *entity.Partner {
	c := *p
	c.ApprovedAt = copyTime(p.ApprovedAt)
	return &c
}

type ReferralRepository struct{ s *Store }

func (r *ReferralRepository) Create(_ context.Context, ref *entity.Referral) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}
	r.s.referrals[ref.ID] = cloneReferral(ref)
	return nil
}

func (r *ReferralRepository) FindByID(_ context.Context, id string) (*entity.Referral, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ref, ok := r.s.referrals[id]
	if !ok {
		return nil, entity.ErrReferralNotFound
	}
	return cloneReferral(ref), nil
}

func (r *ReferralRepository) List(_ context.Context, filter entity.ReferralFilter) ([]*entity.Referral, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Referral, 0, len(r.s.referrals))
	for _, ref := range r.s.referrals {
		if filter.PartnerID != "" && ref.PartnerID != filter.PartnerID {
			continue
		}
		if filter.Status != "" && ref.Status != filter.Status {
			continue
		}
		out = append(out, cloneReferral(ref))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ReferralRepository) CountConverted(_ context.Context, partnerID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, ref := range r.s.referrals {
		if ref.PartnerID == partnerID && ref.Status.Converted() {
			n++
		}
	}
	return n, nil
}

func (r *ReferralRepository) UpdateStatus(_ context.Context, id string, status entity.ReferralStatus, now time.Time) (*entity.Referral, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ref, ok := r.s.referrals[id]
	if !ok {
		return nil, entity.ErrReferralNotFound
	}
	ref.ApplyStatus(status, now)
	return cloneReferral(ref), nil
}

type PartnerRepository struct{ s *Store }

func (r *PartnerRepository) Create(_ context.Context, p *entity.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.partners {
		if existing.Email == p.Email {
			return entity.ErrEmailAlreadyExists
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.partners[p.ID] = clonePartner(p)
	return nil
}

func (r *PartnerRepository) FindByID(_ context.Context, id string) (*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.partners[id]
	if !ok {
		return nil, entity.ErrPartnerNotFound
	}
	return clonePartner(p), nil
}

func (r *PartnerRepository) FindByEmail(_ context.Context, email string) (*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = entity.NormalizeEmail(email)
	for _, p := range r.s.partners {
		if p.Email == email {
			return clonePartner(p), nil
		}
	}
	return nil, entity.ErrPartnerNotFound
}

func (r *PartnerRepository) ListPending(_ context.Context) ([]*entity.Partner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Partner
	for _, p := range r.s.partners {
		if p.Status == entity.PartnerPendingApproval && p.Role == entity.RolePartner {
			out = append(out, clonePartner(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PartnerRepository) UpdateStatus(_ context.Context, p *entity.Partner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.partners[p.ID]
	if !ok {
		return entity.ErrPartnerNotFound
	}
	stored.Status = p.Status
	stored.UpdatedAt = p.UpdatedAt
	stored.ApprovedAt = copyTime(p.ApprovedAt)
	return nil
}

type PixRepository struct{ s *Store }

func (r *PixRepository) Save(_ context.Context, p *entity.PartnerPixData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *p
	r.s.pix[p.PartnerID] = &c
	return nil
}

func (r *PixRepository) FindByPartnerID(_ context.Context, partnerID string) (*entity.PartnerPixData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pix[partnerID]
	if !ok {
		return nil, entity.ErrPixNotFound
	}
	c := *p
	return &c, nil
}

func (r *PixRepository) FindByPartnerIDs(_ context.Context, partnerIDs []string) (map[string]*entity.PartnerPixData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]*entity.PartnerPixData, len(partnerIDs))
	for _, id := range partnerIDs {
		if p, ok := r.s.pix[id]; ok {
			c := *p
			out[id] = &c
		}
	}
	return out, nil
}
