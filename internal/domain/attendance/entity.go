package attendance

import "time"

// Attendance is one employee's record for one local calendar date. Exactly
// one record exists per (employee, date); it is created on check-in, mutated
// by check-out and never hard-deleted. Corrections go through a separate
// correction request, not through mutation of this record.
type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string

	// Date is the local calendar day in the schedule's timezone, not a
	// timestamp.
	Date time.Time

	CheckInAt         *time.Time // UTC
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInInFence    *bool
	CheckOutAt        *time.Time // UTC
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutInFence   *bool

	MinutesLate      int
	TotalWorkMinutes int
	OvertimeMinutes  int
	// OvertimeAmount is the indicative pay for the day's overtime minutes at
	// check-out time. The authoritative amount for payout is frozen on the
	// overtime request at final approval.
	OvertimeAmount float64

	SystemNote   *string // set by validation, e.g. out-of-geofence flags
	EmployeeNote *string // user-supplied

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses.
	EmployeeName *string
}

// CheckedOut reports whether the record reached its terminal state for the
// day.
func (a Attendance) CheckedOut() bool {
	return a.CheckOutAt != nil
}
