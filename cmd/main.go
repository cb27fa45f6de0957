package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	addScheduleExceptionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/add_schedule_exception"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	deleteScheduleExceptionHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_schedule_exception"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	listProfessionalsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_professionals"
	loginHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/register"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/migrator"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/notification"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	usersService "github.com/m04kA/SMC-AppointmentService/internal/service/users"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	updateAppointmentStatusUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-AppointmentService/migrations"
	"github.com/m04kA/SMC-AppointmentService/pkg/authtoken"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	scheduleDefaults, err := cfg.ScheduleDefaults.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule defaults: %v", err)
	}

	// Инициализируем метрики (если включены)
	// *metrics.Metrics безопасен при nil, но наблюдатель пула передаем только при включенных метриках
	var metricsCollector *metrics.Metrics
	var dbObserver dbmetrics.Observer
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, nil)
		dbObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.MigrateOnStart {
		if err := migrator.New(db, migrations.FS, log).Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Все запросы идут через обёртку, без метрик она только проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, dbObserver, stopMetricsCh)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	tokens, err := authtoken.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	// Инициализируем отправку уведомлений
	sender, closeSender := newEmailSender(cfg.Notifications, log)
	defer closeSender()
	notifier := notification.NewNotifier(sender, userRepository, metricsCollector, location, log)
	notifications := notification.NewDispatcher(log)
	log.Info("Notifications provider: %s", cfg.Notifications.Provider)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(userRepository, scheduleRepository, txMgr, scheduleDefaults, log)
	usersSvc := usersService.NewService(userRepository, scheduleRepository, txMgr, tokens, scheduleDefaults, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		userRepository,
		scheduleSvc,
		notifier,
		metricsCollector,
		txMgr,
		createAppointmentUC.Config{
			Location:            location,
			HorizonDays:         cfg.Booking.HorizonDays,
			NotificationTimeout: cfg.Booking.NotificationTimeout(),
		},
		notifications,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleSvc,
		location,
		cfg.Booking.HorizonDays,
		log,
	)

	updateAppointmentStatusUseCase := updateAppointmentStatusUC.NewUseCase(
		appointmentRepository,
		notifier,
		txMgr,
		domain.NewStatusMachine(cfg.Booking.AllowCompletedStatus),
		cfg.Booking.NotificationTimeout(),
		notifications,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(usersSvc, log)
	login := loginHandler.NewHandler(usersSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(usersSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	addScheduleException := addScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	deleteScheduleException := deleteScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(updateAppointmentStatusUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Аутентификация ---
	auth := api.PathPrefix("/auth").Subrouter()
	if cfg.Server.AuthRateLimitPerMinute > 0 {
		auth.Use(middleware.NewRateLimiter(cfg.Server.AuthRateLimitPerMinute, cfg.Server.AuthRateBurst, log).Limit)
	}
	auth.HandleFunc("/register", register.Handle).Methods(http.MethodPost)
	auth.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	// --- Специалисты ---
	// Каталог специалистов с фильтром по специальности
	api.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)

	// Расписание специалиста
	api.HandleFunc("/professionals/{professionalId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату или на весь горизонт
	api.HandleFunc("/professionals/{professionalId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Управление расписанием (только сам специалист) ---
	protected.HandleFunc("/professionals/{professionalId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}/schedule/exceptions",
		addScheduleException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/schedule/exceptions/{exceptionId}",
		deleteScheduleException.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений до закрытия соединения с брокером
	if err := notifications.Wait(shutdownCtx); err != nil {
		log.Warn("Pending notifications were not delivered before shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newEmailSender выбирает отправителя писем по настройкам
// Возвращаемая функция закрывает соединение с брокером (если оно было открыто)
func newEmailSender(cfg config.NotificationsConfig, log *logger.Logger) (notification.EmailSender, func()) {
	switch cfg.Provider {
	case config.NotificationProviderSendGrid:
		sender, err := notification.NewSendGridSender(notification.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize sendgrid sender: %v", err)
		}
		return sender, func() {}

	case config.NotificationProviderAMQP:
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			log.Fatal("Failed to open AMQP channel: %v", err)
		}
		if err := notification.DeclareQueue(ch, cfg.Queue); err != nil {
			log.Fatal("Failed to declare notifications queue: %v", err)
		}
		sender, err := notification.NewQueueSender(ch, cfg.Queue)
		if err != nil {
			log.Fatal("Failed to initialize queue sender: %v", err)
		}
		return sender, func() {
			_ = ch.Close()
			_ = conn.Close()
		}

	default:
		return notification.NewStubSender(log), func() {}
	}
}
