package approval

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/approval"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/notify"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type WorkflowEngineImpl struct {
	approval.RequestRepository
	employee.EmployeeRepository
	schedule.WorkScheduleRepository
	resolver employee.CapabilityResolver
	policy   schedule.TimeWindowPolicy
	clock    clock.Clock
	notifier notify.Notifier
}

func NewWorkflowEngine(
	requestRepo approval.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	resolver employee.CapabilityResolver,
	policy schedule.TimeWindowPolicy,
	clk clock.Clock,
	notifier notify.Notifier,
) approval.WorkflowEngine {
	return &WorkflowEngineImpl{
		RequestRepository:      requestRepo,
		EmployeeRepository:     employeeRepo,
		WorkScheduleRepository: workScheduleRepo,
		resolver:               resolver,
		policy:                 policy,
		clock:                  clk,
		notifier:               notifier,
	}
}

// SubmitOvertime implements approval.WorkflowEngine.
func (e *WorkflowEngineImpl) SubmitOvertime(ctx context.Context, actor employee.Actor, req approval.SubmitOvertimeRequest) (approval.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.RequestResponse{}, err
	}

	dateRequested, err := approval.ParsePayloadDate(req.DateRequested)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to parse date_requested: %w", err)
	}

	request := approval.Request{
		ID:            uuid.NewString(),
		CompanyID:     actor.CompanyID,
		RequesterID:   actor.EmployeeID,
		Kind:          approval.KindOvertime,
		Status:        approval.StatusPending,
		DateRequested: &dateRequested,
		Hours:         &req.Hours,
		Description:   &req.Description,
	}

	return e.create(ctx, request)
}

// SubmitCorrection implements approval.WorkflowEngine.
func (e *WorkflowEngineImpl) SubmitCorrection(ctx context.Context, actor employee.Actor, req approval.SubmitCorrectionRequest) (approval.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.RequestResponse{}, err
	}

	correctionDate, err := approval.ParsePayloadDate(req.Date)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	request := approval.Request{
		ID:               uuid.NewString(),
		CompanyID:        actor.CompanyID,
		RequesterID:      actor.EmployeeID,
		Kind:             approval.KindCorrection,
		Status:           approval.StatusPending,
		CorrectionDate:   &correctionDate,
		CorrectionReason: &req.Reason,
	}

	if req.ProposedCheckInAt != nil {
		t, err := approval.ParsePayloadDateTime(*req.ProposedCheckInAt)
		if err != nil {
			return approval.RequestResponse{}, fmt.Errorf("failed to parse proposed_check_in_at: %w", err)
		}
		request.ProposedCheckInAt = &t
	}
	if req.ProposedCheckOutAt != nil {
		t, err := approval.ParsePayloadDateTime(*req.ProposedCheckOutAt)
		if err != nil {
			return approval.RequestResponse{}, fmt.Errorf("failed to parse proposed_check_out_at: %w", err)
		}
		request.ProposedCheckOutAt = &t
	}

	return e.create(ctx, request)
}

// SubmitMonthlySummary implements approval.WorkflowEngine.
func (e *WorkflowEngineImpl) SubmitMonthlySummary(ctx context.Context, actor employee.Actor, req approval.SubmitMonthlySummaryRequest) (approval.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.RequestResponse{}, err
	}

	request := approval.Request{
		ID:           uuid.NewString(),
		CompanyID:    actor.CompanyID,
		RequesterID:  actor.EmployeeID,
		Kind:         approval.KindMonthlySummary,
		Status:       approval.StatusPending,
		SummaryMonth: &req.Month,
		SummaryYear:  &req.Year,
		SummaryNote:  req.Note,
	}

	return e.create(ctx, request)
}

func (e *WorkflowEngineImpl) create(ctx context.Context, request approval.Request) (approval.RequestResponse, error) {
	created, err := e.RequestRepository.Create(ctx, request)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to create %s request: %w", request.Kind, err)
	}
	return mapRequestToResponse(created), nil
}

// Approve implements approval.WorkflowEngine. The transition applied depends
// on the request's current status and the actor's capability:
//
//	pending         + admin                -> approved (direct finalization)
//	pending         + level >= 1           -> level1_approved
//	level1_approved + admin or final-capable -> approved
//
// A final-capable (level >= 2, org-wide) non-admin actor cannot act on a
// pending request; the first stage must happen first.
func (e *WorkflowEngineImpl) Approve(ctx context.Context, actor employee.Actor, requestID string) (approval.RequestResponse, error) {
	cap, err := e.resolver.Resolve(ctx, actor)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to resolve capability: %w", err)
	}

	request, err := e.RequestRepository.GetByID(ctx, requestID, actor.CompanyID)
	if err != nil {
		return approval.RequestResponse{}, err
	}

	switch request.Status {
	case approval.StatusPending:
		if cap.IsAdmin {
			return e.finalize(ctx, request, actor, approval.StatusPending)
		}
		if cap.CanFinalApprove() {
			// Org-wide approvers wait for the first stage.
			return approval.RequestResponse{}, approval.ErrInvalidTransition
		}
		if cap.CanLevel1Approve() {
			return e.level1Approve(ctx, request, actor)
		}
		return approval.RequestResponse{}, approval.ErrInsufficientCapability

	case approval.StatusLevel1Approved:
		if cap.CanFinalApprove() {
			return e.finalize(ctx, request, actor, approval.StatusLevel1Approved)
		}
		return approval.RequestResponse{}, approval.ErrInsufficientCapability

	default:
		return approval.RequestResponse{}, approval.ErrInvalidTransition
	}
}

func (e *WorkflowEngineImpl) level1Approve(ctx context.Context, request approval.Request, actor employee.Actor) (approval.RequestResponse, error) {
	now := e.clock.Now()
	request.Status = approval.StatusLevel1Approved
	request.Level1ApprovedBy = &actor.EmployeeID
	request.Level1ApprovedAt = &now

	if err := e.RequestRepository.TransitionStatus(ctx, request, approval.StatusPending); err != nil {
		return approval.RequestResponse{}, err
	}

	e.notifier.Notify(request.RequesterID, string(request.Kind)+"_level1_approved", request.ID)

	return mapRequestToResponse(request), nil
}

func (e *WorkflowEngineImpl) finalize(ctx context.Context, request approval.Request, actor employee.Actor, expected approval.Status) (approval.RequestResponse, error) {
	now := e.clock.Now()
	request.Status = approval.StatusApproved
	request.FinalApprovedBy = &actor.EmployeeID
	request.FinalApprovedAt = &now

	if request.Kind == approval.KindOvertime {
		amount, err := e.overtimeAmount(ctx, request)
		if err != nil {
			return approval.RequestResponse{}, err
		}
		// Frozen here: later schedule rate edits never change an approved
		// amount.
		request.OvertimeAmount = &amount
	}

	if err := e.RequestRepository.TransitionStatus(ctx, request, expected); err != nil {
		return approval.RequestResponse{}, err
	}

	e.notifier.Notify(request.RequesterID, string(request.Kind)+"_approved", request.ID)

	return mapRequestToResponse(request), nil
}

// overtimeAmount computes hours x hourly rate x the workday or holiday
// multiplier in effect right now.
func (e *WorkflowEngineImpl) overtimeAmount(ctx context.Context, request approval.Request) (float64, error) {
	if request.DateRequested == nil || request.Hours == nil {
		return 0, fmt.Errorf("overtime request %s is missing its payload", request.ID)
	}

	emp, err := e.EmployeeRepository.GetByID(ctx, request.RequesterID, request.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("failed to get requester: %w", err)
	}

	ws, err := e.WorkScheduleRepository.GetByCompany(ctx, request.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("failed to get work schedule: %w", err)
	}

	d := *request.DateRequested
	window, err := e.policy.ResolveDate(ctx, request.CompanyID, d.Year(), d.Month(), d.Day())
	if err != nil {
		return 0, fmt.Errorf("failed to classify overtime date: %w", err)
	}

	rate := ws.OvertimeRateWorkday
	if !window.Kind.IsWorkday() {
		rate = ws.OvertimeRateHoliday
	}

	return *request.Hours * emp.HourlyRate * rate, nil
}

// Reject implements approval.WorkflowEngine.
func (e *WorkflowEngineImpl) Reject(ctx context.Context, actor employee.Actor, requestID string, reason string) (approval.RequestResponse, error) {
	if validator.IsEmpty(reason) {
		return approval.RequestResponse{}, approval.ErrMissingRejectionReason
	}

	cap, err := e.resolver.Resolve(ctx, actor)
	if err != nil {
		return approval.RequestResponse{}, fmt.Errorf("failed to resolve capability: %w", err)
	}

	request, err := e.RequestRepository.GetByID(ctx, requestID, actor.CompanyID)
	if err != nil {
		return approval.RequestResponse{}, err
	}

	if request.Status.Terminal() {
		return approval.RequestResponse{}, approval.ErrInvalidTransition
	}

	if !cap.CanReject() {
		return approval.RequestResponse{}, approval.ErrInsufficientCapability
	}

	now := e.clock.Now()
	expected := request.Status
	request.RejectionReason = &reason

	// The rejection stamp records the stage at which the request died.
	switch expected {
	case approval.StatusPending:
		request.Level1RejectedBy = &actor.EmployeeID
		request.Level1RejectedAt = &now
	case approval.StatusLevel1Approved:
		request.FinalRejectedBy = &actor.EmployeeID
		request.FinalRejectedAt = &now
	}
	request.Status = approval.StatusRejected

	if err := e.RequestRepository.TransitionStatus(ctx, request, expected); err != nil {
		return approval.RequestResponse{}, err
	}

	e.notifier.Notify(request.RequesterID, string(request.Kind)+"_rejected", request.ID)

	return mapRequestToResponse(request), nil
}

// ListRequests implements approval.WorkflowEngine. Actors without any
// approval capability only see their own requests.
func (e *WorkflowEngineImpl) ListRequests(ctx context.Context, actor employee.Actor, filter approval.ListFilter) (approval.ListRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return approval.ListRequestResponse{}, err
	}

	cap, err := e.resolver.Resolve(ctx, actor)
	if err != nil {
		return approval.ListRequestResponse{}, fmt.Errorf("failed to resolve capability: %w", err)
	}

	if !cap.IsAdmin && cap.Level < 1 {
		filter.RequesterID = &actor.EmployeeID
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	requests, total, err := e.RequestRepository.List(ctx, filter, actor.CompanyID)
	if err != nil {
		return approval.ListRequestResponse{}, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]approval.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapRequestToResponse(req))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return approval.ListRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// GetRequest implements approval.WorkflowEngine.
func (e *WorkflowEngineImpl) GetRequest(ctx context.Context, actor employee.Actor, requestID string) (approval.RequestResponse, error) {
	request, err := e.RequestRepository.GetByID(ctx, requestID, actor.CompanyID)
	if err != nil {
		if errors.Is(err, approval.ErrRequestNotFound) {
			return approval.RequestResponse{}, approval.ErrRequestNotFound
		}
		return approval.RequestResponse{}, fmt.Errorf("failed to get request: %w", err)
	}

	if request.RequesterID != actor.EmployeeID {
		cap, err := e.resolver.Resolve(ctx, actor)
		if err != nil {
			return approval.RequestResponse{}, fmt.Errorf("failed to resolve capability: %w", err)
		}
		if !cap.IsAdmin && cap.Level < 1 {
			return approval.RequestResponse{}, approval.ErrRequestNotFound
		}
	}

	return mapRequestToResponse(request), nil
}
