package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/geo"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/notify"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.WorkScheduleRepository
	employee.EmployeeRepository
	policy   schedule.TimeWindowPolicy
	clock    clock.Clock
	notifier notify.Notifier
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	employeeRepo employee.EmployeeRepository,
	policy schedule.TimeWindowPolicy,
	clk clock.Clock,
	notifier notify.Notifier,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		WorkScheduleRepository: workScheduleRepo,
		EmployeeRepository:     employeeRepo,
		policy:                 policy,
		clock:                  clk,
		notifier:               notifier,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, companyID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	point := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if !point.HasCoordinates() {
		// Fail closed: never record an event with guessed location data.
		return attendance.AttendanceResponse{}, attendance.ErrLocationUnavailable
	}

	nowUTC := a.clock.Now()

	window, err := a.policy.ResolveAt(ctx, companyID, nowUTC)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, window.LocalDate, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	if window.EarliestCheckIn != nil && nowUTC.Before(*window.EarliestCheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedWindow
	}

	ws, err := a.WorkScheduleRepository.GetByCompany(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	// Lateness is measured from window start plus grace, never on
	// non-workdays.
	minutesLate := 0
	if window.Kind.IsWorkday() {
		graceDeadline := window.WindowStart.Add(time.Duration(window.GraceMinutes) * time.Minute)
		if nowUTC.After(graceDeadline) {
			minutesLate = int(math.Floor(nowUTC.Sub(graceDeadline).Minutes()))
		}
	}

	withinFence := geo.WithinGeofence(point, ws.OfficeLatitude, ws.OfficeLongitude, ws.RadiusMeters)

	data := attendance.Attendance{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       window.LocalDate,

		CheckInAt:        &nowUTC,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInInFence:   &withinFence,

		MinutesLate:  minutesLate,
		EmployeeNote: req.Note,
	}

	// Geofence failure is advisory: field employees may legitimately work
	// off-site, so the event is flagged, not refused.
	if !withinFence {
		note := fenceNote("check-in", point, ws)
		data.SystemNote = &note
	}

	created, err := a.AttendanceRepository.Create(ctx, data)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	resp := mapAttendanceToResponse(created)
	a.notifier.Notify(employeeID, "attendance_checked_in", resp)

	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, companyID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	point := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if !point.HasCoordinates() {
		return attendance.AttendanceResponse{}, attendance.ErrLocationUnavailable
	}

	nowUTC := a.clock.Now()

	window, err := a.policy.ResolveAt(ctx, companyID, nowUTC)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, window.LocalDate, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}
	if record == nil || record.CheckInAt == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckInYet
	}
	if record.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if window.LatestCheckOut != nil && nowUTC.After(*window.LatestCheckOut) {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedWindow
	}

	ws, err := a.WorkScheduleRepository.GetByCompany(ctx, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	// Negative durations are impossible by precondition ordering; clamp
	// defensively all the same.
	totalMinutes := int(nowUTC.Sub(*record.CheckInAt).Minutes())
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	overtimeMinutes := totalMinutes - (window.RequiredMinutes + ws.OvertimeThresholdMinutes)
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	// Indicative amount at today's rates. The payable amount is the one
	// frozen on the overtime request at final approval.
	overtimeAmount := 0.0
	if overtimeMinutes > 0 {
		emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
		}
		rate := ws.OvertimeRateWorkday
		if !window.Kind.IsWorkday() {
			rate = ws.OvertimeRateHoliday
		}
		overtimeAmount = float64(overtimeMinutes) / 60 * emp.HourlyRate * rate
	}

	withinFence := geo.WithinGeofence(point, ws.OfficeLatitude, ws.OfficeLongitude, ws.RadiusMeters)

	record.CheckOutAt = &nowUTC
	record.CheckOutLatitude = req.Latitude
	record.CheckOutLongitude = req.Longitude
	record.CheckOutInFence = &withinFence
	record.TotalWorkMinutes = totalMinutes
	record.OvertimeMinutes = overtimeMinutes
	record.OvertimeAmount = overtimeAmount
	if req.Note != nil {
		record.EmployeeNote = req.Note
	}

	if !withinFence {
		note := fenceNote("check-out", point, ws)
		record.SystemNote = appendNote(record.SystemNote, note)
	}

	if err := a.AttendanceRepository.SetCheckOut(ctx, *record); err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	resp := mapAttendanceToResponse(*record)
	a.notifier.Notify(employeeID, "attendance_checked_out", resp)

	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employeeID, companyID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, companyID, err := actorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

func actorFromContext(ctx context.Context) (employeeID string, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	companyID, ok = claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return employeeID, companyID, nil
}

func fenceNote(event string, point geo.Point, ws schedule.WorkSchedule) string {
	distance := geo.HaversineDistance(
		*point.Latitude, *point.Longitude,
		ws.OfficeLatitude, ws.OfficeLongitude,
	)
	return fmt.Sprintf("%s recorded %.0fm from office, outside the %dm geofence",
		event, distance, ws.RadiusMeters)
}

func appendNote(existing *string, note string) *string {
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return &note
	}
	combined := *existing + "; " + note
	return &combined
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format("2006-01-02"),
		CheckInAt:         timePtrToString(att.CheckInAt),
		CheckOutAt:        timePtrToString(att.CheckOutAt),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		CheckInInFence:    att.CheckInInFence,
		CheckOutInFence:   att.CheckOutInFence,
		MinutesLate:       att.MinutesLate,
		TotalWorkMinutes:  att.TotalWorkMinutes,
		OvertimeMinutes:   att.OvertimeMinutes,
		OvertimeAmount:    att.OvertimeAmount,
		SystemNote:        att.SystemNote,
		EmployeeNote:      att.EmployeeNote,
	}
}
