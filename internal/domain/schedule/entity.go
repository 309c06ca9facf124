package schedule

import "time"

// WorkSchedule is the per-organization attendance configuration. There is
// exactly one active schedule per company; all attendance math reads from it.
type WorkSchedule struct {
	ID        string
	CompanyID string
	Timezone  string // IANA name, e.g. "Asia/Jakarta"

	// Workdays holds ISO weekday numbers (1=Monday .. 7=Sunday) on which
	// attendance is expected.
	Workdays []int

	Regular   DayWindow
	Shortened DayWindow
	// ShortenedWeekday selects which weekday uses the Shortened window
	// (typically Friday). 0 means no shortened day is configured.
	ShortenedWeekday int

	OfficeLatitude  float64
	OfficeLongitude float64
	// RadiusMeters of zero or below disables the geofence check.
	RadiusMeters int

	OvertimeThresholdMinutes int
	OvertimeRateWorkday      float64
	OvertimeRateHoliday      float64

	EarliestCheckInEnabled bool
	EarliestCheckInTime    string // "15:04" local
	LatestCheckOutEnabled  bool
	LatestCheckOutTime     string // "15:04" local

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayWindow is one work-window variant. Regular days and the shortened day
// carry independent required minutes.
type DayWindow struct {
	StartTime       string // "15:04" local
	EndTime         string // "15:04" local
	RequiredMinutes int
	GraceMinutes    int
}

// Holiday marks a calendar date as a non-workday. Membership test only,
// no time component.
type Holiday struct {
	ID        string
	CompanyID string
	Date      time.Time // local calendar date, midnight
	Note      string
}

// DayKind classifies a local calendar date.
type DayKind string

const (
	DayKindWorkday DayKind = "workday"
	DayKindWeekend DayKind = "weekend"
	DayKindHoliday DayKind = "holiday"
)

// IsWorkday reports whether attendance rules (lateness, required minutes)
// apply on this kind of day.
func (k DayKind) IsWorkday() bool {
	return k == DayKindWorkday
}

// ResolvedWindow is the effective work window for a specific local date.
type ResolvedWindow struct {
	// LocalDate is midnight of the calendar date in the schedule timezone.
	LocalDate time.Time

	Kind            DayKind
	WindowStart     time.Time // zero on non-workdays
	WindowEnd       time.Time // zero on non-workdays
	RequiredMinutes int       // 0 on non-workdays
	GraceMinutes    int

	EarliestCheckIn *time.Time // nil when the guard is disabled
	LatestCheckOut  *time.Time // nil when the guard is disabled

	Location *time.Location
}
