package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type PartnerRepository struct {
	DB *sql.DB
}

func NewPartnerRepository(db *sql.DB) *PartnerRepository {
	return &PartnerRepository{DB: db}
}

const partnerColumns = `id, name, email, phone, password_hash, role, status, created_at, updated_at, approved_at`

func scanPartner(row rowScanner) (*entity.Partner, error) {
	var (
		p          entity.Partner
		role       string
		status     string
		approvedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.PasswordHash,
		&role,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
		&approvedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Role = entity.Role(role)
	p.Status = entity.PartnerStatus(status)
	if approvedAt.Valid {
		t := approvedAt.Time
		p.ApprovedAt = &t
	}
	return &p, nil
}

func (r *PartnerRepository) Create(ctx context.Context, p *entity.Partner) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	query := `
		INSERT INTO partners (id, name, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Email,
		p.Phone,
		p.PasswordHash,
		string(p.Role),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*entity.Partner, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrPartnerNotFound
	}

	query := `SELECT ` + partnerColumns + ` FROM partners WHERE id = $1`
	p, err := scanPartner(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPartnerNotFound
	}
	return p, err
}

func (r *PartnerRepository) FindByEmail(ctx context.Context, email string) (*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners WHERE email = $1`
	p, err := scanPartner(r.DB.QueryRowContext(ctx, query, entity.NormalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPartnerNotFound
	}
	return p, err
}

func (r *PartnerRepository) ListPending(ctx context.Context) ([]*entity.Partner, error) {
	query := `SELECT ` + partnerColumns + ` FROM partners
		WHERE status = 'PENDING_APPROVAL' AND role = 'PARTNER'
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending partners: %w", err)
	}
	defer rows.Close()

	out := []*entity.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PartnerRepository) UpdateStatus(ctx context.Context, p *entity.Partner) error {
	query := `UPDATE partners SET status = $2, updated_at = $3, approved_at = $4 WHERE id = $1`

	var approvedAt sql.NullTime
	if p.ApprovedAt != nil {
		approvedAt = sql.NullTime{Time: *p.ApprovedAt, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, p.ID, string(p.Status), p.UpdatedAt, approvedAt)
	if err != nil {
		return fmt.Errorf("update partner status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrPartnerNotFound
	}
	return nil
}
