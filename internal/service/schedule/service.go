package schedule

import (
	"context"
	"fmt"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/go-chi/jwtauth/v5"
)

type ScheduleServiceImpl struct {
	schedule.WorkScheduleRepository
	schedule.HolidayRepository
}

func NewScheduleService(
	workScheduleRepo schedule.WorkScheduleRepository,
	holidayRepo schedule.HolidayRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		WorkScheduleRepository: workScheduleRepo,
		HolidayRepository:      holidayRepo,
	}
}

// GetWorkSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetWorkSchedule(ctx context.Context) (schedule.WorkScheduleResponse, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	ws, err := s.WorkScheduleRepository.GetByCompany(ctx, companyID)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	return mapWorkScheduleToResponse(ws), nil
}

// ListHolidays implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListHolidays(ctx context.Context, filter schedule.ListHolidaysFilter) (schedule.ListHolidaysResponse, error) {
	from, to, err := filter.Range()
	if err != nil {
		return schedule.ListHolidaysResponse{}, err
	}

	companyID, err := companyFromContext(ctx)
	if err != nil {
		return schedule.ListHolidaysResponse{}, err
	}

	holidays, err := s.HolidayRepository.ListByRange(ctx, companyID, from, to)
	if err != nil {
		return schedule.ListHolidaysResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]schedule.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, schedule.HolidayResponse{
			ID:   h.ID,
			Date: h.Date.Format("2006-01-02"),
			Note: h.Note,
		})
	}

	return schedule.ListHolidaysResponse{Holidays: responses}, nil
}

func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func mapWorkScheduleToResponse(ws schedule.WorkSchedule) schedule.WorkScheduleResponse {
	return schedule.WorkScheduleResponse{
		ID:       ws.ID,
		Timezone: ws.Timezone,
		Workdays: ws.Workdays,

		Regular:          mapDayWindowToResponse(ws.Regular),
		Shortened:        mapDayWindowToResponse(ws.Shortened),
		ShortenedWeekday: ws.ShortenedWeekday,

		OfficeLatitude:  ws.OfficeLatitude,
		OfficeLongitude: ws.OfficeLongitude,
		RadiusMeters:    ws.RadiusMeters,

		OvertimeThresholdMinutes: ws.OvertimeThresholdMinutes,
		OvertimeRateWorkday:      ws.OvertimeRateWorkday,
		OvertimeRateHoliday:      ws.OvertimeRateHoliday,

		EarliestCheckInEnabled: ws.EarliestCheckInEnabled,
		EarliestCheckInTime:    ws.EarliestCheckInTime,
		LatestCheckOutEnabled:  ws.LatestCheckOutEnabled,
		LatestCheckOutTime:     ws.LatestCheckOutTime,
	}
}

func mapDayWindowToResponse(dw schedule.DayWindow) schedule.DayWindowResponse {
	return schedule.DayWindowResponse{
		StartTime:       dw.StartTime,
		EndTime:         dw.EndTime,
		RequiredMinutes: dw.RequiredMinutes,
		GraceMinutes:    dw.GraceMinutes,
	}
}
