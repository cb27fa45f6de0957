package delete_schedule_exception

import "context"

type ScheduleService interface {
	RemoveException(ctx context.Context, actorID, professionalID, exceptionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
