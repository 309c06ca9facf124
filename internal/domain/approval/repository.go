package approval

import (
	"context"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
)

// RequestRepository defines data access for approvable requests.
type RequestRepository interface {
	// Create inserts a new request in pending status.
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Request, error)

	// TransitionStatus applies the update only while the stored status still
	// equals expected, serializing concurrent transitions per request id.
	// Returns ErrInvalidTransition when another transition won the race.
	TransitionStatus(ctx context.Context, req Request, expected Status) error

	// List retrieves requests with filters and pagination.
	List(ctx context.Context, filter ListFilter, companyID string) ([]Request, int64, error)
}

// WorkflowEngine is the two-level approval state machine shared by all
// request kinds: pending -> level1_approved -> approved, with rejected
// terminal from either non-terminal state.
type WorkflowEngine interface {
	// SubmitOvertime creates a pending overtime request.
	SubmitOvertime(ctx context.Context, actor employee.Actor, req SubmitOvertimeRequest) (RequestResponse, error)

	// SubmitCorrection creates a pending attendance-correction request.
	SubmitCorrection(ctx context.Context, actor employee.Actor, req SubmitCorrectionRequest) (RequestResponse, error)

	// SubmitMonthlySummary creates a pending monthly-summary request.
	SubmitMonthlySummary(ctx context.Context, actor employee.Actor, req SubmitMonthlySummaryRequest) (RequestResponse, error)

	// Approve advances the request one stage, or straight to approved for
	// administrators acting on a pending request.
	Approve(ctx context.Context, actor employee.Actor, requestID string) (RequestResponse, error)

	// Reject terminates the request with a mandatory reason.
	Reject(ctx context.Context, actor employee.Actor, requestID string, reason string) (RequestResponse, error)

	// ListRequests retrieves requests visible to the actor.
	ListRequests(ctx context.Context, actor employee.Actor, filter ListFilter) (ListRequestResponse, error)

	// GetRequest retrieves a single request by ID.
	GetRequest(ctx context.Context, actor employee.Actor, requestID string) (RequestResponse, error)
}
