package entity

import "github.com/shopspring/decimal"

// ReferralSummary alimenta os cards do painel admin. Sempre recalculado.
type ReferralSummary struct {
	Total           int             `json:"total"`
	Pending         int             `json:"pending"`
	Negotiating     int             `json:"negotiating"`
	Converted       int             `json:"converted"`
	Paid            int             `json:"paid"`
	AwaitingPayment decimal.Decimal `json:"awaiting_payment"`
	PaidTotal       decimal.Decimal `json:"paid_total"`
}

func SummarizeReferrals(referrals []*Referral) ReferralSummary {
	s := ReferralSummary{
		AwaitingPayment: decimal.Zero,
		PaidTotal:       decimal.Zero,
	}
	for _, r := range referrals {
		s.Total++
		switch r.Status {
		case StatusPendente:
			s.Pending++
		case StatusEmNegociacao:
			s.Negotiating++
		case StatusConvertida:
			s.Converted++
			s.AwaitingPayment = s.AwaitingPayment.Add(r.BonusAmount)
		case StatusPago:
			s.Paid++
			s.PaidTotal = s.PaidTotal.Add(r.BonusAmount)
		}
	}
	return s
}

type PartnerDashboard struct {
	Total     int             `json:"total"`
	Converted int             `json:"converted"`
	Pending   int             `json:"pending"`
	Earnings  decimal.Decimal `json:"earnings"`
	Progress  TierProgress    `json:"progress"`
}

func PartnerStats(referrals []*Referral) PartnerDashboard {
	d := PartnerDashboard{Earnings: decimal.Zero}
	for _, r := range referrals {
		d.Total++
		if r.Status == StatusPendente {
			d.Pending++
		}
		if r.Status.Converted() {
			d.Converted++
			d.Earnings = d.Earnings.Add(r.BonusAmount)
		}
	}
	d.Progress = ProgressFor(d.Converted)
	return d
}
