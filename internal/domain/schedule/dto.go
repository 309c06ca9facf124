package schedule

import (
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/pkg/validator"
)

// ========================================
// SCHEDULE DTOs
// ========================================

type DayWindowResponse struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	RequiredMinutes int    `json:"required_minutes"`
	GraceMinutes    int    `json:"grace_minutes"`
}

type WorkScheduleResponse struct {
	ID       string `json:"id"`
	Timezone string `json:"timezone"`
	Workdays []int  `json:"workdays"`

	Regular          DayWindowResponse `json:"regular"`
	Shortened        DayWindowResponse `json:"shortened"`
	ShortenedWeekday int               `json:"shortened_weekday"`

	OfficeLatitude  float64 `json:"office_latitude"`
	OfficeLongitude float64 `json:"office_longitude"`
	RadiusMeters    int     `json:"radius_meters"`

	OvertimeThresholdMinutes int     `json:"overtime_threshold_minutes"`
	OvertimeRateWorkday      float64 `json:"overtime_rate_workday"`
	OvertimeRateHoliday      float64 `json:"overtime_rate_holiday"`

	EarliestCheckInEnabled bool   `json:"earliest_check_in_enabled"`
	EarliestCheckInTime    string `json:"earliest_check_in_time,omitempty"`
	LatestCheckOutEnabled  bool   `json:"latest_check_out_enabled"`
	LatestCheckOutTime     string `json:"latest_check_out_time,omitempty"`
}

type ListHolidaysFilter struct {
	StartDate string
	EndDate   string
}

// Range validates the filter and returns the parsed inclusive date range.
func (f *ListHolidaysFilter) Range() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	from, ok := validator.IsValidDate(f.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "must be a valid date in YYYY-MM-DD format",
		})
	}

	to, ok := validator.IsValidDate(f.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	return from, to, nil
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

type ListHolidaysResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}
