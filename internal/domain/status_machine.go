package domain

import "fmt"

type actorRole int

const (
	actorClient actorRole = iota
	actorProfessional
)

type transitionKey struct {
	from AppointmentStatus
	to   AppointmentStatus
}

// transitions lists who may move an appointment between two statuses.
// Transitions into completed are added only when the deployment enables them.
var transitions = map[transitionKey][]actorRole{
	{StatusPending, StatusConfirmed}:   {actorProfessional},
	{StatusPending, StatusCancelled}:   {actorClient, actorProfessional},
	{StatusConfirmed, StatusCancelled}: {actorClient, actorProfessional},
}

var completedTransitions = map[transitionKey][]actorRole{
	{StatusPending, StatusCompleted}:   {actorProfessional},
	{StatusConfirmed, StatusCompleted}: {actorProfessional},
}

// StatusMachine governs appointment status changes
type StatusMachine struct {
	AllowCompleted bool
}

// NewStatusMachine creates a status machine
func NewStatusMachine(allowCompleted bool) StatusMachine {
	return StatusMachine{AllowCompleted: allowCompleted}
}

// Transition moves appt to the target status on behalf of actorID.
// appt is left untouched on error.
func (m StatusMachine) Transition(appt *Appointment, actorID int64, to AppointmentStatus) error {
	if !to.IsValid() || (to == StatusCompleted && !m.AllowCompleted) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	var role actorRole
	switch actorID {
	case appt.ProfessionalID:
		role = actorProfessional
	case appt.ClientID:
		role = actorClient
	default:
		return fmt.Errorf("%w: user %d is not a party of appointment %d", ErrForbidden, actorID, appt.ID)
	}

	allowed, ok := m.lookup(appt.Status, to)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, appt.Status, to)
	}
	for _, r := range allowed {
		if r == role {
			appt.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: user %d may not move appointment %d to %s", ErrForbidden, actorID, appt.ID, to)
}

// CanTransition reports whether the transition would succeed
func (m StatusMachine) CanTransition(appt Appointment, actorID int64, to AppointmentStatus) bool {
	return m.Transition(&appt, actorID, to) == nil
}

func (m StatusMachine) lookup(from, to AppointmentStatus) ([]actorRole, bool) {
	key := transitionKey{from: from, to: to}
	if roles, ok := transitions[key]; ok {
		return roles, true
	}
	if m.AllowCompleted {
		roles, ok := completedTransitions[key]
		return roles, ok
	}
	return nil, false
}
