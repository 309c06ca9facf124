package response

import (
	"errors"
	"net/http"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/approval"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNoCheckInYet):
		Conflict(w, "No check-in recorded today")
	case errors.Is(err, attendance.ErrOutsideAllowedWindow):
		BadRequest(w, "Outside the allowed attendance window", nil)
	case errors.Is(err, attendance.ErrLocationUnavailable):
		BadRequest(w, "Location coordinates are required", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Approval domain errors
	case errors.Is(err, approval.ErrInvalidTransition):
		Conflict(w, "Request is not in a state that allows this action")
	case errors.Is(err, approval.ErrInsufficientCapability):
		Forbidden(w, "Insufficient approval authority")
	case errors.Is(err, approval.ErrMissingRejectionReason):
		ValidationError(w, map[string]string{"reason": "rejection reason is required"})
	case errors.Is(err, approval.ErrRequestNotFound):
		NotFound(w, "Request not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrTimezoneUnavailable):
		ServiceUnavailable(w, "Schedule timezone is not available")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
