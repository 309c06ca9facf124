package approval

import "time"

// Kind discriminates the business payload of an approvable request. The
// status machine and authorization rules are identical across kinds.
type Kind string

const (
	KindOvertime       Kind = "overtime"
	KindCorrection     Kind = "correction"
	KindMonthlySummary Kind = "monthly_summary"
)

var KindValues = []string{
	string(KindOvertime),
	string(KindCorrection),
	string(KindMonthlySummary),
}

// Status is the source of truth for transition legality. The *_by/_at
// stamps below are audit metadata only and never drive decisions.
type Status string

const (
	StatusPending        Status = "pending"
	StatusLevel1Approved Status = "level1_approved"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

// Terminal reports whether no further transition is legal.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is an approvable request of any kind. Transitions are monotonic
// forward except rejection, which is terminal from any non-terminal state.
// Rejected requests are resubmitted as new requests, never mutated.
type Request struct {
	ID          string
	CompanyID   string
	RequesterID string
	Kind        Kind
	Status      Status

	Level1ApprovedBy *string
	Level1ApprovedAt *time.Time
	FinalApprovedBy  *string
	FinalApprovedAt  *time.Time
	Level1RejectedBy *string
	Level1RejectedAt *time.Time
	FinalRejectedBy  *string
	FinalRejectedAt  *time.Time

	// RejectionReason is non-empty whenever Status is rejected.
	RejectionReason *string

	// Overtime payload.
	DateRequested *time.Time
	Hours         *float64
	Description   *string
	// OvertimeAmount is frozen at final approval using the rates in effect
	// at that moment; it never drifts with later schedule edits.
	OvertimeAmount *float64

	// Correction payload.
	CorrectionDate     *time.Time
	ProposedCheckInAt  *time.Time
	ProposedCheckOutAt *time.Time
	CorrectionReason   *string

	// Monthly summary payload.
	SummaryMonth *int
	SummaryYear  *int
	SummaryNote  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for responses.
	RequesterName *string
}
