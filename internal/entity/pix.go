package entity

import (
	"context"
	"regexp"
	"strings"
	"time"
)

type PixKeyType string

const (
	PixCPF    PixKeyType = "CPF"
	PixCNPJ   PixKeyType = "CNPJ"
	PixEmail  PixKeyType = "EMAIL"
	PixPhone  PixKeyType = "PHONE"
	PixRandom PixKeyType = "RANDOM"
)

func (t PixKeyType) Valid() bool {
	switch t {
	case PixCPF, PixCNPJ, PixEmail, PixPhone, PixRandom:
		return true
	}
	return false
}

var nonDigits = regexp.MustCompile(`\D`)

func OnlyDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// PartnerPixData é o destino do repasse. Um por parceiro, sobrescrito a cada
// atualização.
type PartnerPixData struct {
	PartnerID     string     `json:"partner_id"`
	PartnerName   string     `json:"partner_name"`
	PixKeyType    PixKeyType `json:"pix_key_type"`
	PixKey        string     `json:"pix_key"`
	AccountHolder string     `json:"account_holder"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NormalizePixKey(keyType PixKeyType, key string) string {
	switch keyType {
	case PixCPF, PixCNPJ, PixPhone:
		return OnlyDigits(key)
	case PixEmail, PixRandom:
		return strings.TrimSpace(key)
	}
	return strings.TrimSpace(key)
}

func NewPartnerPixData(partnerID, partnerName string, keyType PixKeyType, key, holder string, now time.Time) *PartnerPixData {
	return &PartnerPixData{
		PartnerID:     partnerID,
		PartnerName:   partnerName,
		PixKeyType:    keyType,
		PixKey:        NormalizePixKey(keyType, key),
		AccountHolder: strings.TrimSpace(holder),
		UpdatedAt:     now,
	}
}

// Display formata a chave para conferência no momento do PIX.
func (p *PartnerPixData) Display() string {
	k := p.PixKey
	switch p.PixKeyType {
	case PixCPF:
		if len(k) == 11 {
			return k[0:3] + "." + k[3:6] + "." + k[6:9] + "-" + k[9:11]
		}
	case PixCNPJ:
		if len(k) == 14 {
			return k[0:2] + "." + k[2:5] + "." + k[5:8] + "/" + k[8:12] + "-" + k[12:14]
		}
	case PixPhone:
		if len(k) >= 10 {
			return "(" + k[0:2] + ") " + k[2:7] + "-" + k[7:]
		}
	case PixEmail, PixRandom:
	}
	return k
}

func (p *PartnerPixData) Masked() string {
	k := p.PixKey
	switch p.PixKeyType {
	case PixCPF:
		if len(k) == 11 {
			return k[0:3] + ".***.***-" + k[9:11]
		}
		return "***"
	case PixCNPJ:
		if len(k) == 14 {
			return k[0:2] + ".***.***/****-" + k[12:14]
		}
		return "***"
	case PixPhone:
		if len(k) >= 10 {
			return "(**) *****-" + k[len(k)-4:]
		}
		return "****"
	case PixEmail:
		local, domain, ok := strings.Cut(k, "@")
		if !ok || local == "" {
			return "***"
		}
		if len(local) > 2 {
			local = local[:2]
		}
		return local + "***@" + domain
	case PixRandom:
	}
	if len(k) <= 8 {
		return "****"
	}
	return k[:4] + "..." + k[len(k)-4:]
}

type PixRepositoryInterface interface {
	Save(ctx context.Context, p *PartnerPixData) error
	FindByPartnerID(ctx context.Context, partnerID string) (*PartnerPixData, error)
	FindByPartnerIDs(ctx context.Context, partnerIDs []string) (map[string]*PartnerPixData, error)
}
