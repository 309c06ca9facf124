package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
)

type TimeWindowPolicyImpl struct {
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
	clock clock.Clock
}

func NewTimeWindowPolicy(
	workScheduleRepo schedule.WorkScheduleRepository,
	holidayRepo schedule.HolidayRepository,
	clk clock.Clock,
) schedule.TimeWindowPolicy {
	return &TimeWindowPolicyImpl{
		WorkScheduleRepository: workScheduleRepo,
		HolidayRepository:      holidayRepo,
		clock:                  clk,
	}
}

// ResolveAt implements schedule.TimeWindowPolicy.
func (p *TimeWindowPolicyImpl) ResolveAt(ctx context.Context, companyID string, at time.Time) (schedule.ResolvedWindow, error) {
	ws, err := p.WorkScheduleRepository.GetByCompany(ctx, companyID)
	if err != nil {
		return schedule.ResolvedWindow{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	loc, err := p.clock.LoadLocation(ws.Timezone)
	if err != nil {
		// Fail closed: a work window silently shifted to UTC would corrupt
		// every lateness and overtime figure derived from it.
		return schedule.ResolvedWindow{}, schedule.ErrTimezoneUnavailable
	}

	local := at.In(loc)
	return p.resolve(ctx, ws, loc, local.Year(), local.Month(), local.Day())
}

// ResolveDate implements schedule.TimeWindowPolicy.
func (p *TimeWindowPolicyImpl) ResolveDate(ctx context.Context, companyID string, year int, month time.Month, day int) (schedule.ResolvedWindow, error) {
	ws, err := p.WorkScheduleRepository.GetByCompany(ctx, companyID)
	if err != nil {
		return schedule.ResolvedWindow{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	loc, err := p.clock.LoadLocation(ws.Timezone)
	if err != nil {
		return schedule.ResolvedWindow{}, schedule.ErrTimezoneUnavailable
	}

	return p.resolve(ctx, ws, loc, year, month, day)
}

func (p *TimeWindowPolicyImpl) resolve(ctx context.Context, ws schedule.WorkSchedule, loc *time.Location, year int, month time.Month, day int) (schedule.ResolvedWindow, error) {
	localDate := time.Date(year, month, day, 0, 0, 0, 0, loc)
	isoWeekday := isoWeekday(localDate.Weekday())

	kind := schedule.DayKindWorkday
	isHoliday, err := p.HolidayRepository.IsHoliday(ctx, ws.CompanyID, localDate)
	if err != nil {
		return schedule.ResolvedWindow{}, fmt.Errorf("failed to check holiday: %w", err)
	}
	switch {
	case isHoliday:
		// Holiday wins over weekend in reporting; both carry zero required
		// minutes.
		kind = schedule.DayKindHoliday
	case !containsWeekday(ws.Workdays, isoWeekday):
		kind = schedule.DayKindWeekend
	}

	variant := ws.Regular
	if ws.ShortenedWeekday != 0 && isoWeekday == ws.ShortenedWeekday {
		variant = ws.Shortened
	}

	window := schedule.ResolvedWindow{
		LocalDate:    localDate,
		Kind:         kind,
		GraceMinutes: variant.GraceMinutes,
		Location:     loc,
	}

	if kind.IsWorkday() {
		start, err := atClockTime(localDate, variant.StartTime, loc)
		if err != nil {
			return schedule.ResolvedWindow{}, fmt.Errorf("%w: start_time %q", schedule.ErrInvalidWindowTime, variant.StartTime)
		}
		end, err := atClockTime(localDate, variant.EndTime, loc)
		if err != nil {
			return schedule.ResolvedWindow{}, fmt.Errorf("%w: end_time %q", schedule.ErrInvalidWindowTime, variant.EndTime)
		}
		window.WindowStart = start
		window.WindowEnd = end
		window.RequiredMinutes = variant.RequiredMinutes
	}

	if ws.EarliestCheckInEnabled {
		earliest, err := atClockTime(localDate, ws.EarliestCheckInTime, loc)
		if err != nil {
			return schedule.ResolvedWindow{}, fmt.Errorf("%w: earliest_check_in_time %q", schedule.ErrInvalidWindowTime, ws.EarliestCheckInTime)
		}
		window.EarliestCheckIn = &earliest
	}

	if ws.LatestCheckOutEnabled {
		latest, err := atClockTime(localDate, ws.LatestCheckOutTime, loc)
		if err != nil {
			return schedule.ResolvedWindow{}, fmt.Errorf("%w: latest_check_out_time %q", schedule.ErrInvalidWindowTime, ws.LatestCheckOutTime)
		}
		window.LatestCheckOut = &latest
	}

	return window, nil
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1,
// Sunday=7).
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

func containsWeekday(workdays []int, day int) bool {
	for _, wd := range workdays {
		if wd == day {
			return true
		}
	}
	return false
}

// atClockTime combines a local date with an "HH:MM" wall-clock value.
func atClockTime(localDate time.Time, clockTime string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clockTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		localDate.Year(), localDate.Month(), localDate.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}
