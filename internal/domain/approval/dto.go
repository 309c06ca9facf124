package approval

import (
	"time"

	"github.com/presensi-hq/presensi-backend-go/internal/pkg/validator"
)

// ========================================
// APPROVAL REQUEST DTOs
// ========================================

type SubmitOvertimeRequest struct {
	DateRequested string  `json:"date_requested"`
	Hours         float64 `json:"hours"`
	Description   string  `json:"description"`
}

func (r *SubmitOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.DateRequested); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_requested",
			Message: "must be a valid date in YYYY-MM-DD format",
		})
	}

	if r.Hours <= 0 || r.Hours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be between 0 and 24",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitCorrectionRequest struct {
	Date               string  `json:"date"`
	ProposedCheckInAt  *string `json:"proposed_check_in_at,omitempty"`
	ProposedCheckOutAt *string `json:"proposed_check_out_at,omitempty"`
	Reason             string  `json:"reason"`
}

func (r *SubmitCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "must be a valid date in YYYY-MM-DD format",
		})
	}

	if r.ProposedCheckInAt == nil && r.ProposedCheckOutAt == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_check_in_at",
			Message: "at least one proposed time is required",
		})
	}

	for field, v := range map[string]*string{
		"proposed_check_in_at":  r.ProposedCheckInAt,
		"proposed_check_out_at": r.ProposedCheckOutAt,
	} {
		if v != nil {
			if _, ok := validator.IsValidDateTime(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "must be a valid ISO8601 timestamp",
				})
			}
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitMonthlySummaryRequest struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Note  *string `json:"note,omitempty"`
}

func (r *SubmitMonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Kind        *string
	Status      *string
	RequesterID *string
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Kind != nil && *f.Kind != "" && !validator.IsInSlice(*f.Kind, KindValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of overtime, correction, monthly_summary",
		})
	}

	if f.Status != nil && *f.Status != "" {
		valid := []string{
			string(StatusPending),
			string(StatusLevel1Approved),
			string(StatusApproved),
			string(StatusRejected),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, level1_approved, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID            string  `json:"id"`
	RequesterID   string  `json:"requester_id"`
	RequesterName *string `json:"requester_name,omitempty"`
	Kind          string  `json:"kind"`
	Status        string  `json:"status"`

	Level1ApprovedBy *string `json:"level1_approved_by,omitempty"`
	Level1ApprovedAt *string `json:"level1_approved_at,omitempty"`
	FinalApprovedBy  *string `json:"final_approved_by,omitempty"`
	FinalApprovedAt  *string `json:"final_approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`

	DateRequested  *string  `json:"date_requested,omitempty"`
	Hours          *float64 `json:"hours,omitempty"`
	Description    *string  `json:"description,omitempty"`
	OvertimeAmount *float64 `json:"overtime_amount,omitempty"`

	CorrectionDate     *string `json:"correction_date,omitempty"`
	ProposedCheckInAt  *string `json:"proposed_check_in_at,omitempty"`
	ProposedCheckOutAt *string `json:"proposed_check_out_at,omitempty"`
	CorrectionReason   *string `json:"correction_reason,omitempty"`

	SummaryMonth *int    `json:"summary_month,omitempty"`
	SummaryYear  *int    `json:"summary_year,omitempty"`
	SummaryNote  *string `json:"summary_note,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListRequestResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}

// ParsePayloadDate converts a YYYY-MM-DD payload field to a time value.
func ParsePayloadDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParsePayloadDateTime converts an ISO8601 payload field to a UTC time value.
func ParsePayloadDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
