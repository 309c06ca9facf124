package capability

import (
	"context"
	"fmt"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
)

type ResolverImpl struct {
	employee.PositionAssignmentRepository
	clock clock.Clock
}

func NewResolver(assignmentRepo employee.PositionAssignmentRepository, clk clock.Clock) employee.CapabilityResolver {
	return &ResolverImpl{
		PositionAssignmentRepository: assignmentRepo,
		clock:                        clk,
	}
}

// Resolve implements employee.CapabilityResolver. The capability is derived
// fresh on every call; positions can change between a request's first-stage
// and final approval, so nothing is cached.
func (r *ResolverImpl) Resolve(ctx context.Context, actor employee.Actor) (employee.Capability, error) {
	cap := employee.Capability{IsAdmin: actor.IsAdmin}

	assignments, err := r.PositionAssignmentRepository.ListActiveByEmployee(ctx, actor.EmployeeID, actor.CompanyID)
	if err != nil {
		return employee.Capability{}, fmt.Errorf("failed to list position assignments: %w", err)
	}

	now := r.clock.Now()
	for _, a := range assignments {
		if !a.ActiveAt(now) {
			continue
		}
		if a.ApprovalLevel > cap.Level {
			cap.Level = a.ApprovalLevel
		}
		if a.CanApproveOvertimeOrgWide {
			cap.OrgWide = true
		}
	}

	return cap, nil
}
