package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type ReferralRepository struct {
	DB *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{DB: db}
}

const referralColumns = `id, partner_id, partner_name, company_name, cnpj, contact_name, phone, email,
	status, bonus_amount, implementation_paid_at, paid_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReferral(row rowScanner) (*entity.Referral, error) {
	var (
		r      entity.Referral
		status string
		implAt sql.NullTime
		paidAt sql.NullTime
	)
	err := row.Scan(
		&r.ID,
		&r.PartnerID,
		&r.PartnerName,
		&r.CompanyName,
		&r.CNPJ,
		&r.ContactName,
		&r.Phone,
		&r.Email,
		&status,
		&r.BonusAmount,
		&implAt,
		&paidAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Status = entity.ReferralStatus(status)
	if implAt.Valid {
		t := implAt.Time
		r.ImplementationPaidAt = &t
	}
	if paidAt.Valid {
		t := paidAt.Time
		r.PaidAt = &t
	}
	return &r, nil
}

func (r *ReferralRepository) Create(ctx context.Context, ref *entity.Referral) error {
	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}

	query := `
		INSERT INTO referrals (id, partner_id, partner_name, company_name, cnpj, contact_name,
			phone, email, status, bonus_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		ref.ID,
		ref.PartnerID,
		ref.PartnerName,
		ref.CompanyName,
		ref.CNPJ,
		ref.ContactName,
		ref.Phone,
		ref.Email,
		string(ref.Status),
		ref.BonusAmount,
		ref.CreatedAt,
		ref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}
	return nil
}

func (r *ReferralRepository) FindByID(ctx context.Context, id string) (*entity.Referral, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrReferralNotFound
	}

	query := `SELECT ` + referralColumns + ` FROM referrals WHERE id = $1`
	ref, err := scanReferral(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrReferralNotFound
	}
	return ref, err
}

// List devolve da mais nova para a mais antiga.
func (r *ReferralRepository) List(ctx context.Context, filter entity.ReferralFilter) ([]*entity.Referral, error) {
	var (
		where []string
		args  []any
	)
	if filter.PartnerID != "" {
		if _, err := uuid.Parse(filter.PartnerID); err != nil {
			return []*entity.Referral{}, nil
		}
		args = append(args, filter.PartnerID)
		where = append(where, fmt.Sprintf("partner_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + referralColumns + ` FROM referrals`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	out := []*entity.Referral{}
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// CountConverted conta CONVERTIDA e PAGO: base da faixa de bônus.
func (r *ReferralRepository) CountConverted(ctx context.Context, partnerID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM referrals
		WHERE partner_id = $1 AND status IN ('CONVERTIDA', 'PAGO')
	`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, partnerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count converted: %w", err)
	}
	return n, nil
}

// UpdateStatus grava o status e carimba as datas apenas na primeira vez.
func (r *ReferralRepository) UpdateStatus(ctx context.Context, id string, status entity.ReferralStatus, now time.Time) (*entity.Referral, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrReferralNotFound
	}

	query := `
		UPDATE referrals SET
			status = $2,
			updated_at = $3,
			implementation_paid_at = CASE
				WHEN $2::text = 'CONVERTIDA' AND implementation_paid_at IS NULL THEN $3::timestamptz
				ELSE implementation_paid_at END,
			paid_at = CASE
				WHEN $2::text = 'PAGO' AND paid_at IS NULL THEN $3::timestamptz
				ELSE paid_at END
		WHERE id = $1
		RETURNING ` + referralColumns

	ref, err := scanReferral(r.DB.QueryRowContext(ctx, query, id, string(status), now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrReferralNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update referral status: %w", err)
	}
	return ref, nil
}
