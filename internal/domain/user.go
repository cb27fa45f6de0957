package domain

import (
	"fmt"
	"time"
)

// Role of a registered user
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleProfessional
}

// Specialty of a professional
type Specialty string

const (
	SpecialtyDoctor          Specialty = "doctor"
	SpecialtyCoach           Specialty = "coach"
	SpecialtyLawyer          Specialty = "lawyer"
	SpecialtyPsychologist    Specialty = "psychologist"
	SpecialtyDentist         Specialty = "dentist"
	SpecialtyPhysiotherapist Specialty = "physiotherapist"
)

// Specialties lists every supported specialty
var Specialties = []Specialty{
	SpecialtyDoctor,
	SpecialtyCoach,
	SpecialtyLawyer,
	SpecialtyPsychologist,
	SpecialtyDentist,
	SpecialtyPhysiotherapist,
}

// IsValid reports whether the specialty is supported
func (s Specialty) IsValid() bool {
	for _, known := range Specialties {
		if s == known {
			return true
		}
	}
	return false
}

// Profile holds the role-specific part of a user
type Profile interface {
	Role() Role
	Validate() error
}

// ClientProfile is the profile of a client
type ClientProfile struct {
	BirthDate time.Time
}

func (ClientProfile) Role() Role { return RoleClient }

// Validate requires a birth date in the past
func (p ClientProfile) Validate() error {
	if p.BirthDate.IsZero() {
		return fmt.Errorf("%w: birth date is required for clients", ErrInvalidRole)
	}
	if p.BirthDate.After(time.Now()) {
		return fmt.Errorf("%w: birth date is in the future", ErrInvalidRole)
	}
	return nil
}

// ProfessionalProfile is the profile of a professional
type ProfessionalProfile struct {
	Specialty Specialty
	Schedule  *Schedule
}

func (ProfessionalProfile) Role() Role { return RoleProfessional }

// Validate requires a known specialty
func (p ProfessionalProfile) Validate() error {
	if !p.Specialty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecialty, p.Specialty)
	}
	if p.Schedule != nil {
		return p.Schedule.Validate()
	}
	return nil
}

// User is a registered account
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	Phone        *string
	Address      *string
	PasswordHash string
	Profile      Profile
	CreatedAt    time.Time
}

// Role returns the role derived from the profile
func (u *User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

// IsProfessional returns true for professional accounts
func (u *User) IsProfessional() bool {
	return u.Role() == RoleProfessional
}

// IsClient returns true for client accounts
func (u *User) IsClient() bool {
	return u.Role() == RoleClient
}

// Professional returns the professional profile, if the user has one
func (u *User) Professional() (*ProfessionalProfile, bool) {
	switch p := u.Profile.(type) {
	case ProfessionalProfile:
		return &p, true
	case *ProfessionalProfile:
		return p, p != nil
	}
	return nil, false
}

// FullName joins first and last names
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
