package schedule

import "errors"

var (
	ErrWorkScheduleNotFound = errors.New("work schedule not found")

	// ErrTimezoneUnavailable is returned when the configured timezone cannot
	// be resolved. The policy fails closed instead of defaulting to UTC,
	// because a silently shifted work window corrupts lateness and overtime
	// calculations.
	ErrTimezoneUnavailable = errors.New("work schedule timezone could not be resolved")

	ErrInvalidWindowTime = errors.New("work schedule window time is not a valid HH:MM value")
)
