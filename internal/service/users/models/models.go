package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// RegisterRequest запрос на регистрацию
// Для клиента обязательна дата рождения, для специалиста специальность
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Role      string  `json:"role" validate:"required,oneof=client professional"`
	BirthDate *string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
	Specialty *string `json:"specialty,omitempty"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse публичное представление пользователя
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Role      string    `json:"role"`
	BirthDate *string   `json:"birthDate,omitempty"`
	Specialty *string   `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse ответ на регистрацию и вход
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ProfessionalListResponse список специалистов
type ProfessionalListResponse struct {
	Professionals []UserResponse `json:"professionals"`
	Total         int            `json:"total"`
}

// FromDomainUser конвертирует пользователя без пароля
func FromDomainUser(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt,
	}

	switch p := u.Profile.(type) {
	case domain.ClientProfile:
		resp.BirthDate = ptr.Ptr(p.BirthDate.Format(domain.DateFormat))
	case domain.ProfessionalProfile:
		resp.Specialty = ptr.Ptr(string(p.Specialty))
	}

	return resp
}

// FromDomainProfessionals конвертирует список специалистов
func FromDomainProfessionals(list []*domain.User) *ProfessionalListResponse {
	resp := &ProfessionalListResponse{
		Professionals: make([]UserResponse, 0, len(list)),
		Total:         len(list),
	}
	for _, u := range list {
		resp.Professionals = append(resp.Professionals, FromDomainUser(u))
	}
	return resp
}
