package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// IsValid reports whether the status is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true for statuses nothing can leave
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a client booking with a professional
type Appointment struct {
	ID             int64
	ClientID       int64
	ProfessionalID int64
	Date           time.Time // start time, minute precision
	Reason         string
	Notes          *string
	Status         AppointmentStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive returns true while the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsParty reports whether the user is the client or the professional of the appointment
func (a *Appointment) IsParty(userID int64) bool {
	return userID == a.ClientID || userID == a.ProfessionalID
}

// Counterpart returns the other party of the appointment
func (a *Appointment) Counterpart(userID int64) int64 {
	if userID == a.ClientID {
		return a.ProfessionalID
	}
	return a.ClientID
}

// AppointmentFilter narrows a professional's appointments
type AppointmentFilter struct {
	ProfessionalID  int64
	From            *time.Time // inclusive
	To              *time.Time // exclusive
	ExcludeStatuses []AppointmentStatus
}

// InactiveStatuses statuses that free the slot
var InactiveStatuses = []AppointmentStatus{StatusCancelled}
