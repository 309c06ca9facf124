package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}

// PositionAssignmentRepository reads position assignments for capability
// resolution.
type PositionAssignmentRepository interface {
	// ListActiveByEmployee retrieves the employee's currently active
	// assignments joined with their positions' approval attributes.
	ListActiveByEmployee(ctx context.Context, employeeID string, companyID string) ([]PositionAssignment, error)
}

// CapabilityResolver derives an actor's approval capability. Implementations
// must recompute on every call; positions can change between a request's
// first-stage and final approval.
type CapabilityResolver interface {
	Resolve(ctx context.Context, actor Actor) (Capability, error)
}
