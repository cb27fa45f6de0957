package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Notifier уведомляет участников записи по email
// Ошибки доставки возвращаются вызывающему, но не должны влиять на саму запись
type Notifier struct {
	sender   EmailSender
	users    UserDirectory
	metrics  MetricsCollector
	location *time.Location
	logger   Logger
}

// NewNotifier создает нотификатор
// metrics может быть nil
func NewNotifier(sender EmailSender, users UserDirectory, metrics MetricsCollector, location *time.Location, logger Logger) *Notifier {
	if location == nil {
		location = time.UTC
	}
	return &Notifier{
		sender:   sender,
		users:    users,
		metrics:  metrics,
		location: location,
		logger:   logger,
	}
}

// NotifyBookingCreated уведомляет клиента и специалиста о новой записи
func (n *Notifier) NotifyBookingCreated(ctx context.Context, appt *domain.Appointment) error {
	client, professional, err := n.participants(ctx, appt)
	if err != nil {
		n.observe(EventBookingCreated, err)
		return err
	}

	when := n.formatDate(appt)
	messages := []EmailMessage{
		{
			To:      client.Email,
			ToName:  client.FullName(),
			Subject: "Appointment requested",
			Body: fmt.Sprintf("Hello %s,\n\nyour appointment with %s on %s is registered and awaits confirmation.\nReason: %s\n",
				client.FirstName, professional.FullName(), when, appt.Reason),
			Event: EventBookingCreated,
		},
		{
			To:      professional.Email,
			ToName:  professional.FullName(),
			Subject: "New appointment request",
			Body: fmt.Sprintf("Hello %s,\n\n%s booked an appointment on %s.\nReason: %s\n",
				professional.FirstName, client.FullName(), when, appt.Reason),
			Event: EventBookingCreated,
		},
	}

	return n.sendAll(ctx, EventBookingCreated, messages)
}

// NotifyStatusChanged уведомляет второго участника о смене статуса
func (n *Notifier) NotifyStatusChanged(ctx context.Context, appt *domain.Appointment, actorID int64) error {
	client, professional, err := n.participants(ctx, appt)
	if err != nil {
		n.observe(EventStatusChanged, err)
		return err
	}

	recipient, actor := client, professional
	if actorID == appt.ClientID {
		recipient, actor = professional, client
	}

	msg := EmailMessage{
		To:      recipient.Email,
		ToName:  recipient.FullName(),
		Subject: fmt.Sprintf("Appointment %s", appt.Status),
		Body: fmt.Sprintf("Hello %s,\n\n%s changed the status of the appointment on %s to %s.\n",
			recipient.FirstName, actor.FullName(), n.formatDate(appt), appt.Status),
		Event: EventStatusChanged,
	}

	return n.sendAll(ctx, EventStatusChanged, []EmailMessage{msg})
}

func (n *Notifier) participants(ctx context.Context, appt *domain.Appointment) (*domain.User, *domain.User, error) {
	client, err := n.users.GetByID(ctx, appt.ClientID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: client id=%d: %v", ErrRecipient, appt.ClientID, err)
	}
	professional, err := n.users.GetByID(ctx, appt.ProfessionalID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: professional id=%d: %v", ErrRecipient, appt.ProfessionalID, err)
	}
	return client, professional, nil
}

func (n *Notifier) sendAll(ctx context.Context, event string, messages []EmailMessage) error {
	var errs []error
	for _, msg := range messages {
		err := n.sender.Send(ctx, msg)
		n.observe(event, err)
		if err != nil {
			n.logger.Warn("Notification %s to %s failed: %v", event, msg.To, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) observe(event string, err error) {
	if n.metrics == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	n.metrics.ObserveNotification(event, status)
}

func (n *Notifier) formatDate(appt *domain.Appointment) string {
	return appt.Date.In(n.location).Format("Monday 2006-01-02 15:04")
}
