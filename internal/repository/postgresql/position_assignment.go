package postgresql

import (
	"context"
	"fmt"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
)

type positionAssignmentRepository struct {
	db *database.DB
}

func NewPositionAssignmentRepository(db *database.DB) employee.PositionAssignmentRepository {
	return &positionAssignmentRepository{db: db}
}

// ListActiveByEmployee implements employee.PositionAssignmentRepository.
// The is_active filter happens here; the effective date range is checked
// against the clock by the capability resolver.
func (p *positionAssignmentRepository) ListActiveByEmployee(ctx context.Context, employeeID string, companyID string) ([]employee.PositionAssignment, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT
			pa.id, pa.employee_id, pa.position_id, pa.is_primary, pa.is_active,
			pa.effective_from, pa.effective_until,
			pos.approval_level, pos.can_approve_overtime_org_wide
		FROM position_assignments pa
		JOIN positions pos ON pos.id = pa.position_id
		WHERE pa.employee_id = $1
		  AND pos.company_id = $2
		  AND pa.is_active = true
		ORDER BY pa.is_primary DESC, pa.effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position assignments: %w", err)
	}
	defer rows.Close()

	var assignments []employee.PositionAssignment
	for rows.Next() {
		var pa employee.PositionAssignment
		if err := rows.Scan(
			&pa.ID, &pa.EmployeeID, &pa.PositionID, &pa.IsPrimary, &pa.IsActive,
			&pa.EffectiveFrom, &pa.EffectiveUntil,
			&pa.ApprovalLevel, &pa.CanApproveOvertimeOrgWide,
		); err != nil {
			return nil, fmt.Errorf("failed to scan position assignment: %w", err)
		}
		assignments = append(assignments, pa)
	}

	return assignments, nil
}
