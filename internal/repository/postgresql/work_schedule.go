package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepository struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepository{db: db}
}

// GetByCompany implements schedule.WorkScheduleRepository.
func (w *workScheduleRepository) GetByCompany(ctx context.Context, companyID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT
			id, company_id, timezone, workdays,
			regular_start_time, regular_end_time, regular_required_minutes, regular_grace_minutes,
			shortened_start_time, shortened_end_time, shortened_required_minutes, shortened_grace_minutes,
			shortened_weekday,
			office_latitude, office_longitude, radius_meters,
			overtime_threshold_minutes, overtime_rate_workday, overtime_rate_holiday,
			earliest_check_in_enabled, earliest_check_in_time,
			latest_check_out_enabled, latest_check_out_time,
			created_at, updated_at
		FROM work_schedules
		WHERE company_id = $1
	`

	var ws schedule.WorkSchedule
	var workdays []int32
	err := q.QueryRow(ctx, query, companyID).Scan(
		&ws.ID, &ws.CompanyID, &ws.Timezone, &workdays,
		&ws.Regular.StartTime, &ws.Regular.EndTime, &ws.Regular.RequiredMinutes, &ws.Regular.GraceMinutes,
		&ws.Shortened.StartTime, &ws.Shortened.EndTime, &ws.Shortened.RequiredMinutes, &ws.Shortened.GraceMinutes,
		&ws.ShortenedWeekday,
		&ws.OfficeLatitude, &ws.OfficeLongitude, &ws.RadiusMeters,
		&ws.OvertimeThresholdMinutes, &ws.OvertimeRateWorkday, &ws.OvertimeRateHoliday,
		&ws.EarliestCheckInEnabled, &ws.EarliestCheckInTime,
		&ws.LatestCheckOutEnabled, &ws.LatestCheckOutTime,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	ws.Workdays = make([]int, 0, len(workdays))
	for _, d := range workdays {
		ws.Workdays = append(ws.Workdays, int(d))
	}

	return ws, nil
}
