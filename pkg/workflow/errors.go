package workflow

import "errors"

// Sentinel errors, checkable with errors.Is at the handler boundary.
// Invalid-input class maps to 400, not-found class to 404.
var (
	ErrUnknownTrack       = errors.New("unknown status track")
	ErrInvalidReportValue = errors.New(`report track accepts only "Enviado" or "Pendente"`)
	ErrProjectNotApproved = errors.New("installation can only be scheduled after project approval")
	ErrInvalidTime        = errors.New("invalid time, expected HH:mm")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrFutureEventDate    = errors.New("event date cannot be in the future")
	ErrMissingDescription = errors.New("event description is required")
	ErrInverterNotFound   = errors.New("inverter not allocated to source installation")

	ErrEmptyStatus     = errors.New("status label cannot be empty")
	ErrDuplicateStatus = errors.New("status label already exists")
	ErrStatusNotFound  = errors.New("status label not found")
	ErrNotPermutation  = errors.New("new order must be a permutation of the current list")
)
