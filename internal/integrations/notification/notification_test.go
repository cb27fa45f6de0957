package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type fakeDirectory map[int64]*domain.User

func (d fakeDirectory) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := d[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

type countingMetrics map[string]int

func (m countingMetrics) ObserveNotification(event, status string) {
	m[event+"/"+status]++
}

func directory() fakeDirectory {
	return fakeDirectory{
		1: {ID: 1, Email: "client@example.com", FirstName: "Ann", LastName: "Lee",
			Profile: domain.ClientProfile{BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}},
		2: {ID: 2, Email: "pro@example.com", FirstName: "Greg", LastName: "House",
			Profile: domain.ProfessionalProfile{Specialty: domain.SpecialtyDoctor}},
	}
}

func appointment() *domain.Appointment {
	return &domain.Appointment{
		ID:             10,
		ClientID:       1,
		ProfessionalID: 2,
		Date:           time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC),
		Reason:         "checkup",
		Status:         domain.StatusPending,
	}
}

func TestNotifier_BookingCreated(t *testing.T) {
	sender := &recordingSender{}
	metrics := countingMetrics{}
	n := NewNotifier(sender, directory(), metrics, time.UTC, logger.NewNop())

	require.NoError(t, n.NotifyBookingCreated(context.Background(), appointment()))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "client@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Body, "Greg House")
	assert.Contains(t, sender.sent[0].Body, "Monday 2025-01-06 09:00")
	assert.Equal(t, "pro@example.com", sender.sent[1].To)
	assert.Equal(t, 2, metrics["booking_created/sent"])
}

func TestNotifier_StatusChangedGoesToCounterpart(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(sender, directory(), nil, time.UTC, logger.NewNop())
	appt := appointment()
	appt.Status = domain.StatusCancelled

	require.NoError(t, n.NotifyStatusChanged(context.Background(), appt, appt.ClientID))
	require.NoError(t, n.NotifyStatusChanged(context.Background(), appt, appt.ProfessionalID))

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "pro@example.com", sender.sent[0].To)
	assert.Equal(t, "client@example.com", sender.sent[1].To)
	assert.Equal(t, "Appointment cancelled", sender.sent[1].Subject)
}

func TestNotifier_Failures(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	metrics := countingMetrics{}
	n := NewNotifier(sender, directory(), metrics, nil, logger.NewNop())

	err := n.NotifyBookingCreated(context.Background(), appointment())
	assert.Error(t, err)
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, 2, metrics["booking_created/failed"])

	appt := appointment()
	appt.ClientID = 99
	err = n.NotifyStatusChanged(context.Background(), appt, 2)
	assert.ErrorIs(t, err, ErrRecipient)
}

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return p.err
}

func TestQueueSender(t *testing.T) {
	pub := &fakePublisher{}
	s, err := NewQueueSender(pub, "emails")
	require.NoError(t, err)

	msg := EmailMessage{To: "a@example.com", Subject: "hi", Body: "text", Event: EventStatusChanged}
	require.NoError(t, s.Send(context.Background(), msg))

	assert.Equal(t, "", pub.exchange)
	assert.Equal(t, "emails", pub.key)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "application/json", pub.msg.ContentType)

	var decoded EmailMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &decoded))
	assert.Equal(t, msg, decoded)

	pub.err = errors.New("channel closed")
	assert.ErrorIs(t, s.Send(context.Background(), msg), ErrDelivery)

	_, err = NewQueueSender(pub, "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

type fakeSendGrid struct {
	got      *mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.got = email
	return f.response, f.err
}

func TestSendGridSender(t *testing.T) {
	_, err := NewSendGridSender(SendGridConfig{}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "no-reply@example.com", FromName: "Appointments"}, logger.NewNop())
	require.NoError(t, err)

	client := &fakeSendGrid{response: &rest.Response{StatusCode: 202}}
	s.client = client

	require.NoError(t, s.Send(context.Background(), EmailMessage{To: "a@example.com", Subject: "hi", Body: "text"}))
	require.NotNil(t, client.got)
	assert.Equal(t, "hi", client.got.Subject)
	assert.Equal(t, "no-reply@example.com", client.got.From.Address)

	client.response = &rest.Response{StatusCode: 401, Body: "unauthorized"}
	assert.ErrorIs(t, s.Send(context.Background(), EmailMessage{To: "a@example.com"}), ErrDelivery)

	client.err = errors.New("timeout")
	assert.ErrorIs(t, s.Send(context.Background(), EmailMessage{To: "a@example.com"}), ErrDelivery)
}

func TestStubSender(t *testing.T) {
	assert.NoError(t, NewStubSender(logger.NewNop()).Send(context.Background(), EmailMessage{To: "a@example.com"}))
}
