package approval

import (
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/approval"
)

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02")
	return &format
}

// mapRequestToResponse converts a Request entity to RequestResponse.
func mapRequestToResponse(req approval.Request) approval.RequestResponse {
	return approval.RequestResponse{
		ID:            req.ID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		Kind:          string(req.Kind),
		Status:        string(req.Status),

		Level1ApprovedBy: req.Level1ApprovedBy,
		Level1ApprovedAt: timePtrToString(req.Level1ApprovedAt),
		FinalApprovedBy:  req.FinalApprovedBy,
		FinalApprovedAt:  timePtrToString(req.FinalApprovedAt),
		RejectionReason:  req.RejectionReason,

		DateRequested:  datePtrToString(req.DateRequested),
		Hours:          req.Hours,
		Description:    req.Description,
		OvertimeAmount: req.OvertimeAmount,

		CorrectionDate:     datePtrToString(req.CorrectionDate),
		ProposedCheckInAt:  timePtrToString(req.ProposedCheckInAt),
		ProposedCheckOutAt: timePtrToString(req.ProposedCheckOutAt),
		CorrectionReason:   req.CorrectionReason,

		SummaryMonth: req.SummaryMonth,
		SummaryYear:  req.SummaryYear,
		SummaryNote:  req.SummaryNote,

		CreatedAt: req.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: req.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
