package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/tillit-parceiros/internal/entity"
)

type ReferralLister interface {
	List(ctx context.Context, filter entity.ReferralFilter) ([]*entity.Referral, error)
}

// PayoutWindowWorker acompanha as indicações convertidas cujo repasse passou
// da janela de 30 dias. Só reporta: nunca altera status.
type PayoutWindowWorker struct {
	referrals    ReferralLister
	logger       *zap.Logger
	tickInterval time.Duration
	now          func() time.Time

	// OnOverdue recebe o total atrasado a cada verificação.
	OnOverdue func(count int)
}

func NewPayoutWindowWorker(referrals ReferralLister, logger *zap.Logger, tickInterval time.Duration) *PayoutWindowWorker {
	return &PayoutWindowWorker{
		referrals:    referrals,
		logger:       logger,
		tickInterval: tickInterval,
		now:          time.Now,
	}
}

func (w *PayoutWindowWorker) Start(ctx context.Context) {
	w.logger.Info("payout window worker iniciado",
		zap.Duration("window", entity.PayoutWindow),
		zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("payout window worker encerrado")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check devolve as indicações CONVERTIDA com repasse atrasado.
func (w *PayoutWindowWorker) Check(ctx context.Context) []*entity.Referral {
	converted, err := w.referrals.List(ctx, entity.ReferralFilter{Status: entity.StatusConvertida})
	if err != nil {
		w.logger.Error("erro ao buscar indicações convertidas", zap.Error(err))
		return nil
	}

	now := w.now()
	var overdue []*entity.Referral
	for _, r := range converted {
		if !r.PayoutOverdue(now) {
			continue
		}
		due, _ := r.PayoutDueAt()
		w.logger.Warn("repasse fora da janela",
			zap.String("referral_id", r.ID),
			zap.String("partner_id", r.PartnerID),
			zap.String("bonus", r.BonusAmount.StringFixed(2)),
			zap.Duration("late_by", now.Sub(due).Round(time.Hour)))
		overdue = append(overdue, r)
	}

	if w.OnOverdue != nil {
		w.OnOverdue(len(overdue))
	}
	return overdue
}
