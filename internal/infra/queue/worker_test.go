package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendReferralStatusChanged(to, partnerName, companyName, status, bonusAmount string) error {
	args := m.Called(to, partnerName, companyName, status, bonusAmount)
	return args.Error(0)
}

func (m *mockNotifier) SendPartnerDecision(to, partnerName string, approved bool) error {
	args := m.Called(to, partnerName, approved)
	return args.Error(0)
}

type mockCRM struct {
	mock.Mock
}

func (m *mockCRM) CreateReferralLead(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// ackRecorder substitui o canal AMQP nas entregas de teste.
type ackRecorder struct {
	mu     sync.Mutex
	acks   int
	nacks  int
	signal chan struct{}
}

func newAckRecorder() *ackRecorder {
	return &ackRecorder{signal: make(chan struct{}, 16)}
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.mu.Lock()
	a.acks++
	a.mu.Unlock()
	a.signal <- struct{}{}
	return nil
}

func (a *ackRecorder) Nack(uint64, bool, bool) error {
	a.mu.Lock()
	a.nacks++
	a.mu.Unlock()
	a.signal <- struct{}{}
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *ackRecorder) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acks, a.nacks
}

func (a *ackRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-a.signal:
	case <-time.After(2 * time.Second):
		t.Fatal("entrega não confirmada")
	}
}

func delivery(t *testing.T, ack amqp.Acknowledger, event Event) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestHandleRoutesEvents(t *testing.T) {
	ctx := context.Background()
	notifier := new(mockNotifier)
	crm := new(mockCRM)

	created := Event{Type: EventReferralCreated, ReferralID: "r1", PartnerID: "p1", CompanyName: "Padaria"}
	crm.On("CreateReferralLead", ctx, created).Return(nil)
	notifier.On("SendReferralStatusChanged", "ana@x.com", "Ana", "Padaria", "Convertida", "150.00").Return(nil)
	notifier.On("SendPartnerDecision", "ana@x.com", "Ana", true).Return(nil)
	notifier.On("SendPartnerDecision", "ana@x.com", "Ana", false).Return(nil)

	w := NewWorker(nil, notifier, crm, zap.NewNop())

	require.NoError(t, w.Handle(ctx, created))
	require.NoError(t, w.Handle(ctx, Event{
		Type: EventReferralStatusChanged, PartnerEmail: "ana@x.com", PartnerName: "Ana",
		CompanyName: "Padaria", Status: "Convertida", BonusAmount: "150.00",
	}))
	require.NoError(t, w.Handle(ctx, Event{Type: EventPartnerApproved, PartnerEmail: "ana@x.com", PartnerName: "Ana"}))
	require.NoError(t, w.Handle(ctx, Event{Type: EventPartnerRejected, PartnerEmail: "ana@x.com", PartnerName: "Ana"}))

	// sem e-mail não há para quem notificar
	require.NoError(t, w.Handle(ctx, Event{Type: EventPartnerApproved, PartnerName: "Sem Email"}))
	require.NoError(t, w.Handle(ctx, Event{Type: "desconhecido"}))

	notifier.AssertExpectations(t)
	crm.AssertExpectations(t)
}

func TestHandleReportsIntegrationError(t *testing.T) {
	ctx := context.Background()
	crm := new(mockCRM)
	crm.On("CreateReferralLead", ctx, mock.Anything).Return(errors.New("kommo 500"))

	var failed []string
	w := NewWorker(nil, nil, crm, zap.NewNop())
	w.OnIntegrationError = func(service string) { failed = append(failed, service) }

	err := w.Handle(ctx, Event{Type: EventReferralCreated, ReferralID: "r1"})

	require.Error(t, err)
	assert.Equal(t, []string{"kommo"}, failed)
}

func TestConsumeAcksAndStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	notifier := new(mockNotifier)
	notifier.On("SendPartnerDecision", "ana@x.com", "Ana", true).Return(nil)
	notifier.On("SendPartnerDecision", "bia@x.com", "Bia", true).Return(errors.New("smtp fora"))

	w := NewWorker(nil, notifier, nil, zap.NewNop())
	ack := newAckRecorder()

	msgs := make(chan amqp.Delivery)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.consume(ctx, msgs)
		close(done)
	}()

	msgs <- delivery(t, ack, Event{Type: EventPartnerApproved, PartnerEmail: "ana@x.com", PartnerName: "Ana"})
	ack.wait(t)
	msgs <- delivery(t, ack, Event{Type: EventPartnerApproved, PartnerEmail: "bia@x.com", PartnerName: "Bia"})
	ack.wait(t)
	msgs <- amqp.Delivery{Acknowledger: ack, Body: []byte("{quebrado")}
	ack.wait(t)

	cancel()
	<-done

	acks, nacks := ack.counts()
	assert.Equal(t, 1, acks)
	assert.Equal(t, 2, nacks)
}

func TestConsumeStopsWhenChannelCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWorker(nil, nil, nil, zap.NewNop())
	msgs := make(chan amqp.Delivery)
	done := make(chan struct{})
	go func() {
		w.consume(context.Background(), msgs)
		close(done)
	}()

	close(msgs)
	<-done
}
