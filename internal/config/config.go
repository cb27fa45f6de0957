package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Провайдеры уведомлений
const (
	NotificationProviderSendGrid = "sendgrid"
	NotificationProviderAMQP     = "amqp"
	NotificationProviderStub     = "stub"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig           `toml:"server"`
	Database         DatabaseConfig         `toml:"database"`
	Logs             LogsConfig             `toml:"logs"`
	Metrics          MetricsConfig          `toml:"metrics"`
	Auth             AuthConfig             `toml:"auth"`
	Booking          BookingConfig          `toml:"booking"`
	ScheduleDefaults ScheduleDefaultsConfig `toml:"schedule_defaults"`
	Notifications    NotificationsConfig    `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`

	// Лимит для /auth (регистрация и вход) с одного IP, 0 отключает
	AuthRateLimitPerMinute int `toml:"auth_rate_limit_per_minute"`
	AuthRateBurst          int `toml:"auth_rate_burst"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки JWT
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// TokenTTL время жизни токена
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	Timezone                   string `toml:"timezone"`
	HorizonDays                int    `toml:"horizon_days"`
	AllowCompletedStatus       bool   `toml:"allow_completed_status"`
	NotificationTimeoutSeconds int    `toml:"notification_timeout_seconds"`
}

// Location часовой пояс, в котором интерпретируется расписание
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// NotificationTimeout таймаут отправки одного уведомления
func (b BookingConfig) NotificationTimeout() time.Duration {
	return time.Duration(b.NotificationTimeoutSeconds) * time.Second
}

// ScheduleDefaultsConfig расписание по умолчанию для новых специалистов
type ScheduleDefaultsConfig struct {
	WorkingDays         []string `toml:"working_days"`
	WorkStart           string   `toml:"work_start"`
	WorkEnd             string   `toml:"work_end"`
	BreakStart          string   `toml:"break_start"`
	BreakEnd            string   `toml:"break_end"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
}

// ToDomain преобразует настройки в доменные значения по умолчанию
func (s ScheduleDefaultsConfig) ToDomain() (domain.ScheduleDefaults, error) {
	days := make([]domain.Weekday, 0, len(s.WorkingDays))
	for _, raw := range s.WorkingDays {
		day, err := domain.ParseWeekday(raw)
		if err != nil {
			return domain.ScheduleDefaults{}, err
		}
		days = append(days, day)
	}

	defaults := domain.ScheduleDefaults{
		WorkingDays:         days,
		WorkStart:           types.TimeString(s.WorkStart),
		WorkEnd:             types.TimeString(s.WorkEnd),
		BreakStart:          types.TimeString(s.BreakStart),
		BreakEnd:            types.TimeString(s.BreakEnd),
		SlotDurationMinutes: s.SlotDurationMinutes,
	}
	if err := domain.NewSchedule(0, defaults).Validate(); err != nil {
		return domain.ScheduleDefaults{}, err
	}
	return defaults, nil
}

// NotificationsConfig настройки отправки уведомлений
type NotificationsConfig struct {
	Provider       string `toml:"provider"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	FromEmail      string `toml:"from_email"`
	FromName       string `toml:"from_name"`
	AMQPURL        string `toml:"amqp_url"`
	Queue          string `toml:"queue"`
}

// Load загружает конфигурацию из TOML файла.
// Переменные окружения (в том числе из .env) переопределяют секреты.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,

			AuthRateLimitPerMinute: 30,
			AuthRateBurst:          5,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			MigrateOnStart:  true,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Auth: AuthConfig{TokenTTLMinutes: 60 * 24},
		Booking: BookingConfig{
			Timezone:                   "UTC",
			HorizonDays:                domain.DefaultHorizonDays,
			NotificationTimeoutSeconds: 10,
		},
		ScheduleDefaults: ScheduleDefaultsConfig{
			WorkingDays:         []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
			WorkStart:           domain.DefaultWorkStart,
			WorkEnd:             domain.DefaultWorkEnd,
			BreakStart:          domain.DefaultBreakStart,
			BreakEnd:            domain.DefaultBreakEnd,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		},
		Notifications: NotificationsConfig{
			Provider: NotificationProviderStub,
			FromName: "Appointments",
			Queue:    "appointment_notifications",
		},
	}
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"DB_HOST", &c.Database.Host},
		{"DB_USER", &c.Database.User},
		{"DB_PASSWORD", &c.Database.Password},
		{"DB_NAME", &c.Database.DBName},
		{"JWT_SECRET", &c.Auth.JWTSecret},
		{"SENDGRID_API_KEY", &c.Notifications.SendGridAPIKey},
		{"AMQP_URL", &c.Notifications.AMQPURL},
		{"LOG_LEVEL", &c.Logs.Level},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.target = v
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Server.AuthRateLimitPerMinute < 0 || c.Server.AuthRateBurst < 0 {
		return fmt.Errorf("%w: server auth rate limit values must not be negative", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (or JWT_SECRET) is required", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.HorizonDays < domain.MinHorizonDays || c.Booking.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: booking.horizon_days must be in %d..%d",
			ErrInvalidConfig, domain.MinHorizonDays, domain.MaxHorizonDays)
	}
	if c.Booking.NotificationTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: booking.notification_timeout_seconds must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.ScheduleDefaults.ToDomain(); err != nil {
		return fmt.Errorf("%w: schedule_defaults: %v", ErrInvalidConfig, err)
	}

	switch c.Notifications.Provider {
	case NotificationProviderStub:
	case NotificationProviderSendGrid:
		if c.Notifications.SendGridAPIKey == "" || c.Notifications.FromEmail == "" {
			return fmt.Errorf("%w: sendgrid provider requires sendgrid_api_key and from_email", ErrInvalidConfig)
		}
	case NotificationProviderAMQP:
		if c.Notifications.AMQPURL == "" || c.Notifications.Queue == "" {
			return fmt.Errorf("%w: amqp provider requires amqp_url and queue", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifications.provider %q", ErrInvalidConfig, c.Notifications.Provider)
	}

	return nil
}
