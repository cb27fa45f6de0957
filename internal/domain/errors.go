package domain

import "errors"

var (
	// ErrInvalidSchedule is returned when a schedule breaks its invariants
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidStatus is returned for an unrecognized appointment status
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrForbidden is returned when the actor may not perform the transition
	ErrForbidden = errors.New("forbidden")

	// ErrTransitionNotAllowed is returned when the current status does not allow the transition
	ErrTransitionNotAllowed = errors.New("status transition not allowed")

	// ErrInvalidRole is returned for an unknown user role or a profile of the wrong shape
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidSpecialty is returned for an unknown professional specialty
	ErrInvalidSpecialty = errors.New("invalid specialty")
)
