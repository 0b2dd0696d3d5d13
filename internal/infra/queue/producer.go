package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type EventType string

const (
	EventReferralCreated       EventType = "referral.created"
	EventReferralStatusChanged EventType = "referral.status_changed"
	EventPartnerApproved       EventType = "partner.approved"
	EventPartnerRejected       EventType = "partner.rejected"
)

// Event carrega tudo que o worker precisa, sem voltar ao banco.
type Event struct {
	Type EventType `json:"type"`

	ReferralID   string `json:"referral_id,omitempty"`
	PartnerID    string `json:"partner_id"`
	PartnerName  string `json:"partner_name"`
	PartnerEmail string `json:"partner_email"`

	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Status      string `json:"status,omitempty"`
	BonusAmount string `json:"bonus_amount,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}

// NoopProducer é usado quando RABBITMQ_URL não está configurado.
type NoopProducer struct {
	Logger *zap.Logger
}

func (p *NoopProducer) PublishEvent(_ context.Context, event Event) error {
	if p.Logger != nil {
		p.Logger.Debug("fila desativada, evento descartado",
			zap.String("type", string(event.Type)),
			zap.String("partner_id", event.PartnerID))
	}
	return nil
}
