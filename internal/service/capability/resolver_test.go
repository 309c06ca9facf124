package capability

import (
	"context"
	"testing"
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssignmentRepo struct {
	assignments []employee.PositionAssignment
}

func (f *fakeAssignmentRepo) ListActiveByEmployee(ctx context.Context, employeeID string, companyID string) ([]employee.PositionAssignment, error) {
	return f.assignments, nil
}

var testInstant = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func newTestResolver(assignments []employee.PositionAssignment) employee.CapabilityResolver {
	return NewResolver(&fakeAssignmentRepo{assignments: assignments}, clock.Fixed{Instant: testInstant})
}

func assignment(level int, orgWide bool) employee.PositionAssignment {
	return employee.PositionAssignment{
		IsActive:                  true,
		EffectiveFrom:             testInstant.AddDate(-1, 0, 0),
		ApprovalLevel:             level,
		CanApproveOvertimeOrgWide: orgWide,
	}
}

func TestResolve_NoAssignments(t *testing.T) {
	resolver := newTestResolver(nil)

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 0, cap.Level)
	assert.False(t, cap.OrgWide)
	assert.False(t, cap.CanLevel1Approve())
	assert.False(t, cap.CanFinalApprove())
}

func TestResolve_HighestLevelWins(t *testing.T) {
	resolver := newTestResolver([]employee.PositionAssignment{
		assignment(1, false),
		assignment(2, false),
	})

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, cap.Level)
	assert.False(t, cap.OrgWide)
	// Level 2 without the org-wide flag cannot finalize.
	assert.True(t, cap.CanLevel1Approve())
	assert.False(t, cap.CanFinalApprove())
}

func TestResolve_OrgWideFromAnyAssignment(t *testing.T) {
	resolver := newTestResolver([]employee.PositionAssignment{
		assignment(2, false),
		assignment(1, true),
	})

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, cap.Level)
	assert.True(t, cap.OrgWide)
	assert.True(t, cap.CanFinalApprove())
}

func TestResolve_ExpiredAssignmentIgnored(t *testing.T) {
	expired := assignment(2, true)
	until := testInstant.AddDate(0, -1, 0)
	expired.EffectiveUntil = &until

	resolver := newTestResolver([]employee.PositionAssignment{
		expired,
		assignment(1, false),
	})

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, cap.Level)
	assert.False(t, cap.OrgWide)
}

func TestResolve_NotYetEffectiveAssignmentIgnored(t *testing.T) {
	future := assignment(2, true)
	future.EffectiveFrom = testInstant.AddDate(0, 1, 0)

	resolver := newTestResolver([]employee.PositionAssignment{future})

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 0, cap.Level)
}

func TestResolve_InactiveAssignmentIgnored(t *testing.T) {
	inactive := assignment(3, true)
	inactive.IsActive = false

	resolver := newTestResolver([]employee.PositionAssignment{inactive})

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1"})
	require.NoError(t, err)

	assert.Equal(t, 0, cap.Level)
	assert.False(t, cap.OrgWide)
}

func TestResolve_AdminSupersedesAssignments(t *testing.T) {
	resolver := newTestResolver(nil)

	cap, err := resolver.Resolve(context.Background(), employee.Actor{EmployeeID: "emp-1", CompanyID: "company-1", IsAdmin: true})
	require.NoError(t, err)

	assert.True(t, cap.IsAdmin)
	assert.True(t, cap.CanLevel1Approve())
	assert.True(t, cap.CanFinalApprove())
	assert.True(t, cap.CanReject())
}
