package rollout

import "errors"

var (
	// ErrNilSchedule is returned when eligibility is requested without a schedule.
	ErrNilSchedule = errors.New("rollout schedule is nil")

	// ErrInvalidSchedule indicates the schedule failed boundary validation.
	ErrInvalidSchedule = errors.New("invalid rollout schedule")

	// ErrUnknownFilterType indicates a cohort filter with a type outside the
	// supported set.
	ErrUnknownFilterType = errors.New("unknown cohort filter type")

	// ErrUnknownOperator indicates a cohort filter with an operator outside
	// the supported set.
	ErrUnknownOperator = errors.New("unknown cohort filter operator")
)
