package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) schedule.HolidayRepository {
	return &holidayRepository{db: db}
}

// IsHoliday implements schedule.HolidayRepository.
func (h *holidayRepository) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays
			WHERE company_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

// ListByRange implements schedule.HolidayRepository.
func (h *holidayRepository) ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, date, note
		FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var hd schedule.Holiday
		if err := rows.Scan(&hd.ID, &hd.CompanyID, &hd.Date, &hd.Note); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hd)
	}

	return holidays, nil
}
