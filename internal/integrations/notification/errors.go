package notification

import "errors"

var (
	// ErrNotConfigured возвращается, когда отправитель создан без обязательных параметров
	ErrNotConfigured = errors.New("notification: sender not configured")

	// ErrDelivery возвращается при ошибке доставки письма
	ErrDelivery = errors.New("notification: delivery failed")

	// ErrRecipient возвращается, когда не удалось получить контакт получателя
	ErrRecipient = errors.New("notification: recipient lookup failed")
)
