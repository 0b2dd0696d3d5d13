package entity

import "github.com/shopspring/decimal"

// Tier é uma faixa de bônus por quantidade de indicações convertidas.
type Tier struct {
	Name  string          `json:"name"`
	Min   int             `json:"min"`
	Max   int             `json:"max"` // -1 = sem teto
	Bonus decimal.Decimal `json:"bonus"`
}

func (t Tier) Contains(converted int) bool {
	if converted < t.Min {
		return false
	}
	return t.Max < 0 || converted <= t.Max
}

var (
	DefaultBonus = decimal.NewFromInt(150)

	tiers = []Tier{
		{Name: "Bronze", Min: 0, Max: 4, Bonus: decimal.NewFromInt(150)},
		{Name: "Prata", Min: 5, Max: 9, Bonus: decimal.NewFromInt(200)},
		{Name: "Ouro", Min: 10, Max: -1, Bonus: decimal.NewFromInt(300)},
	}
)

func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// BonusForConversionCount calcula o bônus de uma nova indicação a partir das
// conversões anteriores do parceiro (CONVERTIDA ou PAGO), sem contar a nova.
func BonusForConversionCount(converted int) decimal.Decimal {
	for _, t := range tiers {
		if t.Contains(converted) {
			return t.Bonus
		}
	}
	return DefaultBonus
}

func TierFor(converted int) Tier {
	for _, t := range tiers {
		if t.Contains(converted) {
			return t
		}
	}
	return tiers[0]
}

type TierProgress struct {
	Tier            Tier  `json:"tier"`
	Converted       int   `json:"converted"`
	NextTier        *Tier `json:"next_tier,omitempty"`
	RemainingToNext int   `json:"remaining_to_next"`
	MaxTier         bool  `json:"max_tier"`
}

func ProgressFor(converted int) TierProgress {
	if converted < 0 {
		converted = 0
	}
	p := TierProgress{Tier: TierFor(converted), Converted: converted}

	for i, t := range tiers {
		if t.Name != p.Tier.Name {
			continue
		}
		if i+1 < len(tiers) {
			next := tiers[i+1]
			p.NextTier = &next
			p.RemainingToNext = next.Min - converted
		} else {
			p.MaxTier = true
		}
		break
	}
	return p
}
