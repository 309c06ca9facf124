package employee

import "time"

type Employee struct {
	ID         string
	CompanyID  string
	FullName   string
	Email      string
	HourlyRate float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Position carries the approval authority attached to a job title.
type Position struct {
	ID        string
	CompanyID string
	Name      string
	// ApprovalLevel 0 grants no approval authority, 1 grants division-level
	// (first stage) approval, 2 and above may finalize when OrgWide is set.
	ApprovalLevel int
	// CanApproveOvertimeOrgWide marks positions empowered to perform the
	// final, organization-wide sign-off.
	CanApproveOvertimeOrgWide bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// PositionAssignment links an employee to a position. An employee may hold
// several concurrent active assignments.
type PositionAssignment struct {
	ID             string
	EmployeeID     string
	PositionID     string
	IsPrimary      bool
	IsActive       bool
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time

	// Joined from positions for capability resolution.
	ApprovalLevel             int
	CanApproveOvertimeOrgWide bool
}

// ActiveAt reports whether the assignment is in force at the given instant.
func (a PositionAssignment) ActiveAt(t time.Time) bool {
	if !a.IsActive {
		return false
	}
	if t.Before(a.EffectiveFrom) {
		return false
	}
	if a.EffectiveUntil != nil && t.After(*a.EffectiveUntil) {
		return false
	}
	return true
}

// Capability is the derived approval authority of an acting user.
// Level and OrgWide come from position assignments; IsAdmin comes from the
// identity collaborator and supersedes both.
type Capability struct {
	Level   int
	OrgWide bool
	IsAdmin bool
}

// CanLevel1Approve reports whether the actor may perform the first-stage
// sign-off.
func (c Capability) CanLevel1Approve() bool {
	return c.IsAdmin || c.Level >= 1
}

// CanFinalApprove reports whether the actor may perform the final,
// organization-wide sign-off.
func (c Capability) CanFinalApprove() bool {
	return c.IsAdmin || (c.Level >= 2 && c.OrgWide)
}

// CanReject reports whether the actor may reject a request at all.
func (c Capability) CanReject() bool {
	return c.IsAdmin || c.Level >= 1
}

// Actor identifies the authenticated user acting on a request, as supplied
// by the identity collaborator on every call.
type Actor struct {
	EmployeeID string
	CompanyID  string
	IsAdmin    bool
}
