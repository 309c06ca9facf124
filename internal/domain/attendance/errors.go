package attendance

import "errors"

// Attendance domain errors. All are ordinary caller-visible outcomes: the
// caller's event is refused and no record changes.
var (
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrNoCheckInYet         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out today")
	ErrOutsideAllowedWindow = errors.New("outside the allowed check-in/check-out window")

	// ErrLocationUnavailable is returned when an event arrives without
	// usable coordinates. The event is rejected rather than recorded with
	// guessed location data.
	ErrLocationUnavailable = errors.New("location unavailable")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
