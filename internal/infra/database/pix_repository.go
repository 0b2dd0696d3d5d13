package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type PixRepository struct {
	DB *sql.DB
}

func NewPixRepository(db *sql.DB) *PixRepository {
	return &PixRepository{DB: db}
}

// Save sobrescreve: um registro por parceiro, sem histórico.
func (r *PixRepository) Save(ctx context.Context, p *entity.PartnerPixData) error {
	query := `
		INSERT INTO partner_pix (partner_id, partner_name, pix_key_type, pix_key, account_holder, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (partner_id)
		DO UPDATE SET
			partner_name = EXCLUDED.partner_name,
			pix_key_type = EXCLUDED.pix_key_type,
			pix_key = EXCLUDED.pix_key,
			account_holder = EXCLUDED.account_holder,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.PartnerID,
		p.PartnerName,
		string(p.PixKeyType),
		p.PixKey,
		p.AccountHolder,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pix: %w", err)
	}
	return nil
}

func scanPix(row rowScanner) (*entity.PartnerPixData, error) {
	var (
		p       entity.PartnerPixData
		keyType string
	)
	if err := row.Scan(&p.PartnerID, &p.PartnerName, &keyType, &p.PixKey, &p.AccountHolder, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.PixKeyType = entity.PixKeyType(keyType)
	return &p, nil
}

func (r *PixRepository) FindByPartnerID(ctx context.Context, partnerID string) (*entity.PartnerPixData, error) {
	query := `
		SELECT partner_id, partner_name, pix_key_type, pix_key, account_holder, updated_at
		FROM partner_pix WHERE partner_id::text = $1
	`
	p, err := scanPix(r.DB.QueryRowContext(ctx, query, partnerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPixNotFound
	}
	return p, err
}

func (r *PixRepository) FindByPartnerIDs(ctx context.Context, partnerIDs []string) (map[string]*entity.PartnerPixData, error) {
	out := make(map[string]*entity.PartnerPixData, len(partnerIDs))
	if len(partnerIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT partner_id, partner_name, pix_key_type, pix_key, account_holder, updated_at
		FROM partner_pix WHERE partner_id::text = ANY($1)
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(partnerIDs))
	if err != nil {
		return nil, fmt.Errorf("find pix batch: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPix(rows)
		if err != nil {
			return nil, err
		}
		out[p.PartnerID] = p
	}
	return out, rows.Err()
}
