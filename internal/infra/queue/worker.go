package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Notifier envia os e-mails ao parceiro.
type Notifier interface {
	SendReferralStatusChanged(to, partnerName, companyName, status, bonusAmount string) error
	SendPartnerDecision(to, partnerName string, approved bool) error
}

// CRMClient leva a indicação para o funil do time comercial.
type CRMClient interface {
	CreateReferralLead(ctx context.Context, event Event) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	CRM      CRMClient
	Logger   *zap.Logger

	// OnIntegrationError é chamado com o nome do serviço que falhou.
	OnIntegrationError func(service string)
}

func NewWorker(ch *amqp.Channel, notifier Notifier, crm CRMClient, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		CRM:      crm,
		Logger:   logger,
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Logger.Info("worker aguardando mensagens", zap.String("queue", queueName))
	w.consume(ctx, msgs)
	return nil
}

func (w *Worker) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("worker encerrado")
			return
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn("canal de consumo fechado")
				return
			}
			w.deliver(ctx, d)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, d amqp.Delivery) {
	var event Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Logger.Error("mensagem malformada, enviando para DLQ", zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := w.Handle(ctx, event); err != nil {
		w.Logger.Error("falha ao processar evento",
			zap.String("type", string(event.Type)),
			zap.String("partner_id", event.PartnerID),
			zap.Error(err))
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

// Handle roteia o evento para a integração responsável.
func (w *Worker) Handle(ctx context.Context, event Event) error {
	switch event.Type {
	case EventReferralCreated:
		if w.CRM == nil {
			return nil
		}
		if err := w.CRM.CreateReferralLead(ctx, event); err != nil {
			w.integrationError("kommo")
			return fmt.Errorf("crm: %w", err)
		}
		return nil

	case EventReferralStatusChanged:
		if w.Notifier == nil || event.PartnerEmail == "" {
			return nil
		}
		if err := w.Notifier.SendReferralStatusChanged(event.PartnerEmail, event.PartnerName, event.CompanyName, event.Status, event.BonusAmount); err != nil {
			w.integrationError("smtp")
			return fmt.Errorf("email: %w", err)
		}
		return nil

	case EventPartnerApproved, EventPartnerRejected:
		if w.Notifier == nil || event.PartnerEmail == "" {
			return nil
		}
		approved := event.Type == EventPartnerApproved
		if err := w.Notifier.SendPartnerDecision(event.PartnerEmail, event.PartnerName, approved); err != nil {
			w.integrationError("smtp")
			return fmt.Errorf("email: %w", err)
		}
		return nil
	}

	// Tipo desconhecido: ack para não travar a fila.
	w.Logger.Warn("tipo de evento desconhecido", zap.String("type", string(event.Type)))
	return nil
}

func (w *Worker) integrationError(service string) {
	if w.OnIntegrationError != nil {
		w.OnIntegrationError(service)
	}
}
