package middleware

import "github.com/m04kA/SMC-AppointmentService/pkg/authtoken"

// TokenParser интерфейс проверки токенов доступа
type TokenParser interface {
	Parse(token string) (*authtoken.Claims, error)
}

// HTTPMetrics интерфейс сбора HTTP метрик
type HTTPMetrics interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
