package usecase

import (
	"time"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type CreateReferralInput struct {
	CompanyName string `json:"company_name"`
	CNPJ        string `json:"cnpj"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type CreateReferralOutput struct {
	Referral        *entity.Referral `json:"referral"`
	Tier            string           `json:"tier"`
	ConvertedBefore int              `json:"converted_before"`
}

type UpdateReferralStatusInput struct {
	ReferralID string `json:"-"`
	Status     string `json:"status"`
}

type RegisterPartnerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	UserID    string               `json:"user_id"`
	Name      string               `json:"name"`
	Role      entity.Role          `json:"role"`
	Status    entity.PartnerStatus `json:"status"`
}

type SavePixInput struct {
	PixKeyType    string `json:"pix_key_type"`
	PixKey        string `json:"pix_key"`
	AccountHolder string `json:"account_holder"`
}
