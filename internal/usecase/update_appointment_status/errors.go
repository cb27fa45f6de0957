package update_appointment_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrForbidden возвращается, когда пользователь не может выполнить переход
	ErrForbidden = errors.New("update_appointment_status: forbidden")

	// ErrInvalidStatus возвращается для неизвестного или отключенного статуса
	ErrInvalidStatus = errors.New("update_appointment_status: invalid status")

	// ErrTransitionNotAllowed возвращается, когда переход из текущего статуса невозможен
	ErrTransitionNotAllowed = errors.New("update_appointment_status: transition not allowed")

	// ErrConflict возвращается, когда слот записи уже занят другой активной записью
	ErrConflict = errors.New("update_appointment_status: slot already taken")

	// ErrConcurrentUpdate возвращается, когда запись параллельно меняется другой транзакцией
	ErrConcurrentUpdate = errors.New("update_appointment_status: appointment was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
