package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда у специалиста нет расписания
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedule.repository: exception not found")

	// ErrDuplicateException возвращается, когда на эту дату уже есть исключение
	ErrDuplicateException = errors.New("schedule.repository: exception for this date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
