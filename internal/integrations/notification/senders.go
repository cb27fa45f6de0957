package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendGridClient подмножество *sendgrid.Client
type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridConfig параметры SendGrid
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender отправляет письма через SendGrid API
type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	logger    Logger
}

// NewSendGridSender создает отправителя SendGrid
func NewSendGridSender(cfg SendGridConfig, logger Logger) (*SendGridSender, error) {
	if cfg.APIKey == "" || cfg.FromEmail == "" {
		return nil, fmt.Errorf("%w: sendgrid api key and sender address are required", ErrNotConfigured)
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

// Send отправляет письмо
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrDelivery, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid returned status %d: %s", ErrDelivery, response.StatusCode, response.Body)
	}

	s.logger.Info("Email sent via sendgrid: to=%s, event=%s, status=%d", msg.To, msg.Event, response.StatusCode)
	return nil
}

// QueueSender публикует письма в очередь, откуда их забирает сервис рассылки
type QueueSender struct {
	publisher Publisher
	queue     string
}

// NewQueueSender создает отправителя через AMQP очередь
func NewQueueSender(publisher Publisher, queue string) (*QueueSender, error) {
	if publisher == nil || queue == "" {
		return nil, fmt.Errorf("%w: amqp publisher and queue are required", ErrNotConfigured)
	}
	return &QueueSender{publisher: publisher, queue: queue}, nil
}

// DeclareQueue объявляет durable очередь для писем
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}

// Send публикует письмо как JSON сообщение
func (s *QueueSender) Send(ctx context.Context, msg EmailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: encode message: %v", ErrDelivery, err)
	}

	publishing := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Headers: amqp.Table{
			"event": msg.Event,
		},
	}

	if err := s.publisher.PublishWithContext(ctx, "", s.queue, false, false, publishing); err != nil {
		return fmt.Errorf("%w: publish to %s: %v", ErrDelivery, s.queue, err)
	}
	return nil
}

// StubSender только логирует письма (для разработки и тестов)
type StubSender struct {
	logger Logger
}

// NewStubSender создает отправителя-заглушку
func NewStubSender(logger Logger) *StubSender {
	return &StubSender{logger: logger}
}

// Send логирует письмо без отправки
func (s *StubSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("Stub email sender: to=%s, event=%s, subject=%q", msg.To, msg.Event, msg.Subject)
	return nil
}
