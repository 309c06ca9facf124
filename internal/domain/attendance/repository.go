package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. All
// methods carry companyID to prevent cross-company access.
type AttendanceRepository interface {
	// Create inserts the first check-in of the day. Implementations must
	// enforce the one-record-per-(employee, date) invariant; a concurrent
	// duplicate insert fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a local
	// date. Returns nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// SetCheckOut applies the check-out mutation only while the record has
	// no check-out yet. Returns ErrAlreadyCheckedOut when a concurrent
	// check-out won.
	SetCheckOut(ctx context.Context, att Attendance) error

	// ListByEmployee retrieves an employee's records with filters and
	// pagination.
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter, companyID string) ([]Attendance, int64, error)
}

// AttendanceService is the attendance recording state machine:
// NoRecord -> CheckedIn -> CheckedOut per (employee, local date).
type AttendanceService interface {
	// CheckIn validates and records a check-in event.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut validates and records a check-out event and derives work and
	// overtime minutes.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee.
	GetMyAttendance(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID.
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
