package schedule

import (
	"context"
	"time"
)

// WorkScheduleRepository loads the per-company schedule configuration.
type WorkScheduleRepository interface {
	// GetByCompany retrieves the company's active work schedule.
	GetByCompany(ctx context.Context, companyID string) (WorkSchedule, error)
}

// HolidayRepository answers holiday membership questions.
type HolidayRepository interface {
	// IsHoliday reports whether the given local calendar date is a holiday.
	IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)

	// ListByRange retrieves holidays between two local dates, inclusive.
	ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
}

// ScheduleService exposes the schedule configuration to authenticated
// employees so clients can render work windows and upcoming holidays.
type ScheduleService interface {
	// GetWorkSchedule retrieves the authenticated employee's company schedule.
	GetWorkSchedule(ctx context.Context) (WorkScheduleResponse, error)

	// ListHolidays retrieves holidays in an inclusive date range.
	ListHolidays(ctx context.Context, filter ListHolidaysFilter) (ListHolidaysResponse, error)
}

// TimeWindowPolicy resolves the effective work window for a local date:
// day classification, window variant, required/grace minutes and the
// optional check-in/check-out guards. Both methods fail with
// ErrTimezoneUnavailable when the schedule timezone cannot be loaded.
type TimeWindowPolicy interface {
	// ResolveAt resolves the window for the local calendar date containing
	// the given UTC instant.
	ResolveAt(ctx context.Context, companyID string, at time.Time) (ResolvedWindow, error)

	// ResolveDate resolves the window for a local calendar date.
	ResolveDate(ctx context.Context, companyID string, year int, month time.Month, day int) (ResolvedWindow, error)
}
