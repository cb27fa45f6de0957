package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/users/models"
)

// Service сервис пользователей: регистрация, вход, справочник специалистов
type Service struct {
	userRepo     UserRepository
	scheduleRepo ScheduleRepository
	txManager    TxManager
	tokens       TokenIssuer
	defaults     domain.ScheduleDefaults
	hashCost     int
	logger       Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	scheduleRepo ScheduleRepository,
	txManager TxManager,
	tokens TokenIssuer,
	defaults domain.ScheduleDefaults,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		tokens:       tokens,
		defaults:     defaults,
		hashCost:     bcrypt.DefaultCost,
		logger:       logger,
	}
}

// Register регистрирует пользователя и выдает токен
// Специалисту сразу создается расписание по умолчанию
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	s.logger.Info("Register: email=%s, role=%s", req.Email, req.Role)

	// 1. Валидация и сборка профиля по роли
	user, err := buildUser(req)
	if err != nil {
		s.logger.Warn("Register: invalid request for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Хешируем пароль
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}
	user.PasswordHash = string(hash)

	// 3. Создаем пользователя и расписание одной транзакцией
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err := s.userRepo.Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		if !user.IsProfessional() {
			return nil
		}
		return s.scheduleRepo.Upsert(ctx, domain.NewSchedule(user.ID, s.defaults))
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email=%s already registered", user.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create user email=%s: %v", user.Email, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d registered as %s", user.ID, user.Role())
	return s.authenticate(user)
}

// Login проверяет пароль и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Login: email=%s", email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	return s.authenticate(user)
}

// ListProfessionals получает специалистов, опционально по специальности
func (s *Service) ListProfessionals(ctx context.Context, specialty *string) (*models.ProfessionalListResponse, error) {
	s.logger.Info("ListProfessionals: specialty=%v", specialty)

	var filter *domain.Specialty
	if specialty != nil && *specialty != "" {
		sp := domain.Specialty(strings.ToLower(*specialty))
		if !sp.IsValid() {
			return nil, fmt.Errorf("%w: unknown specialty %q", ErrInvalidInput, *specialty)
		}
		filter = &sp
	}

	list, err := s.userRepo.ListProfessionals(ctx, filter)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfessionals(list), nil
}

func (s *Service) authenticate(user *domain.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role()))
	if err != nil {
		s.logger.Error("Issue token for user id=%d failed: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.FromDomainUser(user),
	}, nil
}

func buildUser(req *models.RegisterRequest) (*domain.User, error) {
	normalized := *req
	normalized.Email = normalizeEmail(req.Email)
	normalized.FirstName = strings.TrimSpace(req.FirstName)
	normalized.LastName = strings.TrimSpace(req.LastName)
	normalized.Role = strings.ToLower(strings.TrimSpace(req.Role))

	if err := validateStruct(&normalized); err != nil {
		return nil, err
	}
	if len(normalized.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	}
	req = &normalized

	var profile domain.Profile
	switch domain.Role(req.Role) {
	case domain.RoleClient:
		if req.BirthDate == nil {
			return nil, fmt.Errorf("%w: birth date is required for clients", domain.ErrInvalidRole)
		}
		birthDate, err := time.Parse(domain.DateFormat, *req.BirthDate)
		if err != nil {
			return nil, errors.New("birth date must be YYYY-MM-DD")
		}
		profile = domain.ClientProfile{BirthDate: birthDate}
	case domain.RoleProfessional:
		if req.Specialty == nil {
			return nil, fmt.Errorf("%w: specialty is required for professionals", domain.ErrInvalidSpecialty)
		}
		profile = domain.ProfessionalProfile{Specialty: domain.Specialty(strings.ToLower(*req.Specialty))}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, req.Role)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &domain.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Profile:   profile,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
