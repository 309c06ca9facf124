package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/attendance"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, company_id, date,
	check_in_at, check_in_latitude, check_in_longitude, check_in_in_fence,
	check_out_at, check_out_latitude, check_out_longitude, check_out_in_fence,
	minutes_late, total_work_minutes, overtime_minutes, overtime_amount,
	system_note, employee_note,
	created_at, updated_at
`

func scanAttendance(row pgx.Row, att *attendance.Attendance) error {
	return row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date,
		&att.CheckInAt, &att.CheckInLatitude, &att.CheckInLongitude, &att.CheckInInFence,
		&att.CheckOutAt, &att.CheckOutLatitude, &att.CheckOutLongitude, &att.CheckOutInFence,
		&att.MinutesLate, &att.TotalWorkMinutes, &att.OvertimeMinutes, &att.OvertimeAmount,
		&att.SystemNote, &att.EmployeeNote,
		&att.CreatedAt, &att.UpdatedAt,
	)
}

// Create implements attendance.AttendanceRepository. The unique
// (employee_id, date) index serializes concurrent first check-ins; the
// loser of the race gets ErrAlreadyCheckedIn.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, date,
			check_in_at, check_in_latitude, check_in_longitude, check_in_in_fence,
			minutes_late, system_note, employee_note
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CompanyID,
		att.Date,
		att.CheckInAt,
		att.CheckInLatitude,
		att.CheckInLongitude,
		att.CheckInInFence,
		att.MinutesLate,
		att.SystemNote,
		att.EmployeeNote,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND company_id = $2
	`

	var att attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, id, companyID), &att); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		  AND company_id = $3
		LIMIT 1
	`

	var att attendance.Attendance
	if err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID), &att); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this employee/date yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// SetCheckOut implements attendance.AttendanceRepository. The check_out_at
// IS NULL guard serializes concurrent check-outs; the loser gets
// ErrAlreadyCheckedOut.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out_at = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			check_out_in_fence = $4,
			total_work_minutes = $5,
			overtime_minutes = $6,
			overtime_amount = $7,
			system_note = $8,
			employee_note = $9,
			updated_at = NOW()
		WHERE id = $10
		  AND company_id = $11
		  AND check_out_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckOutAt,
		att.CheckOutLatitude,
		att.CheckOutLongitude,
		att.CheckOutInFence,
		att.TotalWorkMinutes,
		att.OvertimeMinutes,
		att.OvertimeAmount,
		att.SystemNote,
		att.EmployeeNote,
		att.ID,
		att.CompanyID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.ListFilter, companyID string) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "employee_id = $1 AND company_id = $2"
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "date"
	switch filter.SortBy {
	case "check_in_at":
		orderByField = "check_in_at"
	case "check_out_at":
		orderByField = "check_out_at"
	case "minutes_late":
		orderByField = "minutes_late"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}
