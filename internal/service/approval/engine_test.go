package approval

import (
	"context"
	"testing"
	"time"

	domain "github.com/presensi-hq/presensi-backend-go/internal/domain/approval"
	"github.com/presensi-hq/presensi-backend-go/internal/domain/employee"
	scheduledomain "github.com/presensi-hq/presensi-backend-go/internal/domain/schedule"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/clock"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/notify"
	schedulesvc "github.com/presensi-hq/presensi-backend-go/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeRequestRepo struct {
	requests   map[string]domain.Request
	lastFilter domain.ListFilter
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]domain.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req domain.Request) (domain.Request, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string, companyID string) (domain.Request, error) {
	req, ok := f.requests[id]
	if !ok || req.CompanyID != companyID {
		return domain.Request{}, domain.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) TransitionStatus(ctx context.Context, req domain.Request, expected domain.Status) error {
	stored, ok := f.requests[req.ID]
	if !ok || stored.CompanyID != req.CompanyID {
		return domain.ErrRequestNotFound
	}
	if stored.Status != expected {
		return domain.ErrInvalidTransition
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter domain.ListFilter, companyID string) ([]domain.Request, int64, error) {
	f.lastFilter = filter
	var out []domain.Request
	for _, req := range f.requests {
		if req.CompanyID != companyID {
			continue
		}
		if filter.RequesterID != nil && req.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Kind != nil && string(req.Kind) != *filter.Kind {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeResolver struct {
	caps map[string]employee.Capability
}

func (f *fakeResolver) Resolve(ctx context.Context, actor employee.Actor) (employee.Capability, error) {
	cap := f.caps[actor.EmployeeID]
	if actor.IsAdmin {
		cap.IsAdmin = true
	}
	return cap, nil
}

type fakeScheduleRepo struct {
	ws scheduledomain.WorkSchedule
}

func (f *fakeScheduleRepo) GetByCompany(ctx context.Context, companyID string) (scheduledomain.WorkSchedule, error) {
	return f.ws, nil
}

type fakeHolidayRepo struct {
	holidays map[string]bool
}

func (f *fakeHolidayRepo) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	return f.holidays[date.Format("2006-01-02")], nil
}

func (f *fakeHolidayRepo) ListByRange(ctx context.Context, companyID string, from, to time.Time) ([]scheduledomain.Holiday, error) {
	return nil, nil
}

// ===== FIXTURE =====

var engineTestInstant = time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)

var (
	requester = employee.Actor{EmployeeID: "emp-requester", CompanyID: "company-1"}
	teamLead  = employee.Actor{EmployeeID: "emp-lead", CompanyID: "company-1"}
	director  = employee.Actor{EmployeeID: "emp-director", CompanyID: "company-1"}
	admin     = employee.Actor{EmployeeID: "emp-admin", CompanyID: "company-1", IsAdmin: true}
)

type engineFixture struct {
	engine      domain.WorkflowEngine
	requestRepo *fakeRequestRepo
	wsRepo      *fakeScheduleRepo
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	requestRepo := newFakeRequestRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-requester": {ID: "emp-requester", CompanyID: "company-1", FullName: "Requester", HourlyRate: 100},
	}}
	resolver := &fakeResolver{caps: map[string]employee.Capability{
		"emp-lead":     {Level: 1},
		"emp-director": {Level: 2, OrgWide: true},
	}}
	wsRepo := &fakeScheduleRepo{ws: scheduledomain.WorkSchedule{
		ID:        "ws-1",
		CompanyID: "company-1",
		Timezone:  "Asia/Jakarta",
		Workdays:  []int{1, 2, 3, 4, 5},
		Regular: scheduledomain.DayWindow{
			StartTime:       "09:00",
			EndTime:         "17:00",
			RequiredMinutes: 480,
		},
		OvertimeThresholdMinutes: 60,
		OvertimeRateWorkday:      1.5,
		OvertimeRateHoliday:      2.0,
	}}

	clk := clock.Fixed{Instant: engineTestInstant}
	policy := schedulesvc.NewTimeWindowPolicy(wsRepo, &fakeHolidayRepo{}, clk)

	engine := NewWorkflowEngine(requestRepo, employeeRepo, wsRepo, resolver, policy, clk, notify.Nop{})

	return &engineFixture{
		engine:      engine,
		requestRepo: requestRepo,
		wsRepo:      wsRepo,
	}
}

// submitOvertime files a pending 2 hour overtime request for a workday.
func (f *engineFixture) submitOvertime(t *testing.T, date string) string {
	t.Helper()
	resp, err := f.engine.SubmitOvertime(context.Background(), requester, domain.SubmitOvertimeRequest{
		DateRequested: date,
		Hours:         2,
		Description:   "release deployment",
	})
	require.NoError(t, err)
	return resp.ID
}

// ===== SUBMIT =====

func TestSubmitOvertime_CreatesPending(t *testing.T) {
	f := newEngineFixture(t)

	resp, err := f.engine.SubmitOvertime(context.Background(), requester, domain.SubmitOvertimeRequest{
		DateRequested: "2025-06-02",
		Hours:         2,
		Description:   "release deployment",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.KindOvertime), resp.Kind)
	assert.Equal(t, "emp-requester", resp.RequesterID)
	require.NotNil(t, resp.Hours)
	assert.Equal(t, 2.0, *resp.Hours)
	assert.Nil(t, resp.OvertimeAmount)
}

func TestSubmitCorrection_CreatesPending(t *testing.T) {
	f := newEngineFixture(t)

	proposed := "2025-06-02T02:05:00Z"
	resp, err := f.engine.SubmitCorrection(context.Background(), requester, domain.SubmitCorrectionRequest{
		Date:              "2025-06-02",
		ProposedCheckInAt: &proposed,
		Reason:            "forgot to check in",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.KindCorrection), resp.Kind)
	require.NotNil(t, resp.ProposedCheckInAt)
	assert.Nil(t, resp.ProposedCheckOutAt)
}

func TestSubmitCorrection_NormalizesProposedTimesToUTC(t *testing.T) {
	f := newEngineFixture(t)

	in := "2025-06-02T09:05:00+07:00"
	out := "2025-06-02T17:10:00+07:00"
	resp, err := f.engine.SubmitCorrection(context.Background(), requester, domain.SubmitCorrectionRequest{
		Date:               "2025-06-02",
		ProposedCheckInAt:  &in,
		ProposedCheckOutAt: &out,
		Reason:             "device clock was wrong",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ProposedCheckInAt)
	assert.Equal(t, "2025-06-02T02:05:00Z", *resp.ProposedCheckInAt)
	require.NotNil(t, resp.ProposedCheckOutAt)
	assert.Equal(t, "2025-06-02T10:10:00Z", *resp.ProposedCheckOutAt)
}

func TestSubmitCorrection_RejectsMalformedProposedTime(t *testing.T) {
	f := newEngineFixture(t)

	bad := "yesterday at nine"
	_, err := f.engine.SubmitCorrection(context.Background(), requester, domain.SubmitCorrectionRequest{
		Date:              "2025-06-02",
		ProposedCheckInAt: &bad,
		Reason:            "forgot to check in",
	})
	assert.Error(t, err)
}

func TestSubmitCorrection_RequiresProposedTime(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.SubmitCorrection(context.Background(), requester, domain.SubmitCorrectionRequest{
		Date:   "2025-06-02",
		Reason: "forgot to check in",
	})
	assert.Error(t, err)
}

func TestSubmitMonthlySummary_CreatesPending(t *testing.T) {
	f := newEngineFixture(t)

	resp, err := f.engine.SubmitMonthlySummary(context.Background(), requester, domain.SubmitMonthlySummaryRequest{
		Month: 5,
		Year:  2025,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.KindMonthlySummary), resp.Kind)
	require.NotNil(t, resp.SummaryMonth)
	assert.Equal(t, 5, *resp.SummaryMonth)
}

// ===== APPROVE =====

func TestApprove_Level1AdvancesPending(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	resp, err := f.engine.Approve(context.Background(), teamLead, id)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusLevel1Approved), resp.Status)
	require.NotNil(t, resp.Level1ApprovedBy)
	assert.Equal(t, "emp-lead", *resp.Level1ApprovedBy)
	assert.NotNil(t, resp.Level1ApprovedAt)
	// The first stage never computes money.
	assert.Nil(t, resp.OvertimeAmount)
}

func TestApprove_Level1CannotFinalize(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), teamLead, id)
	require.NoError(t, err)

	_, err = f.engine.Approve(context.Background(), teamLead, id)
	assert.ErrorIs(t, err, domain.ErrInsufficientCapability)
}

func TestApprove_FinalApproverFinalizes(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), teamLead, id)
	require.NoError(t, err)

	resp, err := f.engine.Approve(context.Background(), director, id)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	require.NotNil(t, resp.FinalApprovedBy)
	assert.Equal(t, "emp-director", *resp.FinalApprovedBy)

	// 2 hours x 100/hour x 1.5 workday rate.
	require.NotNil(t, resp.OvertimeAmount)
	assert.Equal(t, 300.0, *resp.OvertimeAmount)
}

func TestApprove_FinalApproverMustWaitForLevel1(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), director, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, err := f.requestRepo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestApprove_NoCapability(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), requester, id)
	assert.ErrorIs(t, err, domain.ErrInsufficientCapability)
}

func TestApprove_AdminFinalizesDirectly(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	resp, err := f.engine.Approve(context.Background(), admin, id)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Nil(t, resp.Level1ApprovedBy)
	require.NotNil(t, resp.FinalApprovedBy)
	assert.Equal(t, "emp-admin", *resp.FinalApprovedBy)
	require.NotNil(t, resp.OvertimeAmount)
	assert.Equal(t, 300.0, *resp.OvertimeAmount)
}

func TestApprove_TerminalStateRefused(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), admin, id)
	require.NoError(t, err)

	_, err = f.engine.Approve(context.Background(), admin, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApprove_HolidayRateForNonWorkday(t *testing.T) {
	f := newEngineFixture(t)
	// 2025-06-01 is a Sunday.
	id := f.submitOvertime(t, "2025-06-01")

	resp, err := f.engine.Approve(context.Background(), admin, id)
	require.NoError(t, err)

	// 2 hours x 100/hour x 2.0 holiday rate.
	require.NotNil(t, resp.OvertimeAmount)
	assert.Equal(t, 400.0, *resp.OvertimeAmount)
}

func TestApprove_AmountFrozenAgainstLaterRateEdits(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), admin, id)
	require.NoError(t, err)

	// A later schedule edit must not change the approved amount.
	f.wsRepo.ws.OvertimeRateWorkday = 3.0

	stored, err := f.requestRepo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	require.NotNil(t, stored.OvertimeAmount)
	assert.Equal(t, 300.0, *stored.OvertimeAmount)
}

// ===== REJECT =====

func TestReject_RequiresReason(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Reject(context.Background(), teamLead, id, "   ")
	assert.ErrorIs(t, err, domain.ErrMissingRejectionReason)

	stored, err := f.requestRepo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestReject_PendingStampsFirstStage(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	resp, err := f.engine.Reject(context.Background(), teamLead, id, "not justified")
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "not justified", *resp.RejectionReason)

	stored, err := f.requestRepo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	require.NotNil(t, stored.Level1RejectedBy)
	assert.Equal(t, "emp-lead", *stored.Level1RejectedBy)
	assert.Nil(t, stored.FinalRejectedBy)
}

func TestReject_AfterLevel1StampsFinalStage(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Approve(context.Background(), teamLead, id)
	require.NoError(t, err)

	_, err = f.engine.Reject(context.Background(), director, id, "budget exceeded")
	require.NoError(t, err)

	stored, err := f.requestRepo.GetByID(context.Background(), id, "company-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, stored.Status)
	require.NotNil(t, stored.FinalRejectedBy)
	assert.Equal(t, "emp-director", *stored.FinalRejectedBy)
	assert.Nil(t, stored.Level1RejectedBy)
	// The first stage approval stamp survives as history.
	assert.NotNil(t, stored.Level1ApprovedBy)
}

func TestReject_TerminalStateRefused(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Reject(context.Background(), teamLead, id, "first rejection")
	require.NoError(t, err)

	_, err = f.engine.Reject(context.Background(), teamLead, id, "second rejection")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_NoCapability(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	_, err := f.engine.Reject(context.Background(), requester, id, "trying anyway")
	assert.ErrorIs(t, err, domain.ErrInsufficientCapability)
}

// ===== LIST / GET =====

func TestListRequests_RequesterScopedToOwn(t *testing.T) {
	f := newEngineFixture(t)
	f.submitOvertime(t, "2025-06-02")

	result, err := f.engine.ListRequests(context.Background(), requester, domain.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	require.NotNil(t, f.requestRepo.lastFilter.RequesterID)
	assert.Equal(t, "emp-requester", *f.requestRepo.lastFilter.RequesterID)
}

func TestListRequests_ApproverSeesAll(t *testing.T) {
	f := newEngineFixture(t)
	f.submitOvertime(t, "2025-06-02")

	result, err := f.engine.ListRequests(context.Background(), teamLead, domain.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalCount)
	assert.Nil(t, f.requestRepo.lastFilter.RequesterID)
}

func TestGetRequest_RequesterSeesOwn(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	resp, err := f.engine.GetRequest(context.Background(), requester, id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
}

func TestGetRequest_StrangerDenied(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	stranger := employee.Actor{EmployeeID: "emp-other", CompanyID: "company-1"}
	_, err := f.engine.GetRequest(context.Background(), stranger, id)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestGetRequest_ApproverSeesAny(t *testing.T) {
	f := newEngineFixture(t)
	id := f.submitOvertime(t, "2025-06-02")

	resp, err := f.engine.GetRequest(context.Background(), teamLead, id)
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
}
