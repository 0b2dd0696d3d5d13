package entity

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReferralStatus é o estágio de uma indicação no funil comercial.
type ReferralStatus string

const (
	StatusPendente     ReferralStatus = "PENDENTE"
	StatusEmNegociacao ReferralStatus = "EM_NEGOCIACAO"
	StatusConvertida   ReferralStatus = "CONVERTIDA"
	StatusPago         ReferralStatus = "PAGO"
)

// PayoutWindow é o prazo (informativo) para pagar o bônus após a implantação.
const PayoutWindow = 30 * 24 * time.Hour

var referralStatuses = []ReferralStatus{
	StatusPendente,
	StatusEmNegociacao,
	StatusConvertida,
	StatusPago,
}

// ReferralStatuses devolve os status na ordem do funil.
func ReferralStatuses() []ReferralStatus {
	out := make([]ReferralStatus, len(referralStatuses))
	copy(out, referralStatuses)
	return out
}

func (s ReferralStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusEmNegociacao, StatusConvertida, StatusPago:
		return true
	}
	return false
}

// Converted indica se a indicação conta para o tier do parceiro.
func (s ReferralStatus) Converted() bool {
	switch s {
	case StatusConvertida, StatusPago:
		return true
	case StatusPendente, StatusEmNegociacao:
		return false
	}
	return false
}

func (s ReferralStatus) Label() string {
	switch s {
	case StatusPendente:
		return "Pendente"
	case StatusEmNegociacao:
		return "Em negociação"
	case StatusConvertida:
		return "Convertida"
	case StatusPago:
		return "Pagamento concluído"
	}
	return string(s)
}

// ParseReferralStatus aceita o nome do status sem diferenciar maiúsculas.
func ParseReferralStatus(raw string) (ReferralStatus, error) {
	s := ReferralStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Entidade: Referral (indicação enviada por um parceiro)
type Referral struct {
	ID          string `json:"id"`
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`

	CompanyName string `json:"company_name"`
	CNPJ        string `json:"cnpj"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	Status    ReferralStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Cliente pagou a implantação: começa a contar o prazo de repasse.
	ImplementationPaidAt *time.Time `json:"implementation_paid_at,omitempty"`
	PaidAt               *time.Time `json:"paid_at,omitempty"`

	BonusAmount decimal.Decimal `json:"bonus_amount"`
}

// NewReferral monta uma indicação PENDENTE com o bônus já congelado.
func NewReferral(partner *Partner, companyName, cnpj, contactName, phone, email string, bonus decimal.Decimal, now time.Time) *Referral {
	return &Referral{
		PartnerID:   partner.ID,
		PartnerName: partner.Name,
		CompanyName: companyName,
		CNPJ:        cnpj,
		ContactName: contactName,
		Phone:       phone,
		Email:       email,
		Status:      StatusPendente,
		CreatedAt:   now,
		UpdatedAt:   now,
		BonusAmount: bonus,
	}
}

// ApplyStatus aplica uma transição feita pelo admin. Qualquer status pode ir
// para qualquer outro; os carimbos de conversão e pagamento só são gravados
// na primeira vez e nunca são apagados.
func (r *Referral) ApplyStatus(status ReferralStatus, now time.Time) {
	r.Status = status
	r.UpdatedAt = now

	switch status {
	case StatusConvertida:
		if r.ImplementationPaidAt == nil {
			t := now
			r.ImplementationPaidAt = &t
		}
	case StatusPago:
		if r.PaidAt == nil {
			t := now
			r.PaidAt = &t
		}
	case StatusPendente, StatusEmNegociacao:
	}
}

// PayoutDueAt devolve o fim da janela de repasse, se a indicação já converteu.
func (r *Referral) PayoutDueAt() (time.Time, bool) {
	if r.ImplementationPaidAt == nil {
		return time.Time{}, false
	}
	return r.ImplementationPaidAt.Add(PayoutWindow), true
}

// PayoutOverdue é informativo: nada no sistema bloqueia pagamentos atrasados.
func (r *Referral) PayoutOverdue(now time.Time) bool {
	if r.Status != StatusConvertida {
		return false
	}
	due, ok := r.PayoutDueAt()
	return ok && now.After(due)
}

// WhatsAppURL abre uma conversa com o contato da empresa indicada.
func (r *Referral) WhatsAppURL() string {
	digits := OnlyDigits(r.Phone)
	if digits == "" {
		return ""
	}
	// telefones locais (DDD + número) recebem o DDI do Brasil
	if len(digits) <= 11 {
		digits = "55" + digits
	}
	return "https://wa.me/" + digits
}

type ReferralFilter struct {
	PartnerID string
	Status    ReferralStatus
}

type ReferralRepositoryInterface interface {
	Create(ctx context.Context, r *Referral) error
	FindByID(ctx context.Context, id string) (*Referral, error)
	// List ordena por created_at decrescente.
	List(ctx context.Context, filter ReferralFilter) ([]*Referral, error)
	CountConverted(ctx context.Context, partnerID string) (int, error)
	UpdateStatus(ctx context.Context, id string, status ReferralStatus, now time.Time) (*Referral, error)
}
