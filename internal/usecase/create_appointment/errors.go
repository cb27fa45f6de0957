package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrForbidden возвращается, когда запись создает не клиент
	ErrForbidden = errors.New("create_appointment: only clients can book appointments")

	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrRejected оборачивает *domain.Rejection, когда запрошенное время не проходит проверки
	ErrRejected = errors.New("create_appointment: booking rejected")

	// ErrConflict оборачивает *domain.Rejection с причиной slot_taken
	ErrConflict = errors.New("create_appointment: slot already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
