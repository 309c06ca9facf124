package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/presensi-hq/presensi-backend-go/internal/domain/approval"
	"github.com/presensi-hq/presensi-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type approvalRequestRepository struct {
	db *database.DB
}

func NewApprovalRequestRepository(db *database.DB) approval.RequestRepository {
	return &approvalRequestRepository{db: db}
}

const approvalRequestColumns = `
	ar.id, ar.company_id, ar.requester_id, ar.kind, ar.status,
	ar.level1_approved_by, ar.level1_approved_at,
	ar.final_approved_by, ar.final_approved_at,
	ar.level1_rejected_by, ar.level1_rejected_at,
	ar.final_rejected_by, ar.final_rejected_at,
	ar.rejection_reason,
	ar.date_requested, ar.hours, ar.description, ar.overtime_amount,
	ar.correction_date, ar.proposed_check_in_at, ar.proposed_check_out_at, ar.correction_reason,
	ar.summary_month, ar.summary_year, ar.summary_note,
	ar.created_at, ar.updated_at,
	e.full_name
`

func scanApprovalRequest(row pgx.Row, req *approval.Request) error {
	return row.Scan(
		&req.ID, &req.CompanyID, &req.RequesterID, &req.Kind, &req.Status,
		&req.Level1ApprovedBy, &req.Level1ApprovedAt,
		&req.FinalApprovedBy, &req.FinalApprovedAt,
		&req.Level1RejectedBy, &req.Level1RejectedAt,
		&req.FinalRejectedBy, &req.FinalRejectedAt,
		&req.RejectionReason,
		&req.DateRequested, &req.Hours, &req.Description, &req.OvertimeAmount,
		&req.CorrectionDate, &req.ProposedCheckInAt, &req.ProposedCheckOutAt, &req.CorrectionReason,
		&req.SummaryMonth, &req.SummaryYear, &req.SummaryNote,
		&req.CreatedAt, &req.UpdatedAt,
		&req.RequesterName,
	)
}

// Create implements approval.RequestRepository.
func (a *approvalRequestRepository) Create(ctx context.Context, req approval.Request) (approval.Request, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO approval_requests (
			id, company_id, requester_id, kind, status,
			date_requested, hours, description,
			correction_date, proposed_check_in_at, proposed_check_out_at, correction_reason,
			summary_month, summary_year, summary_note
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15
		)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.CompanyID, req.RequesterID, req.Kind, req.Status,
		req.DateRequested, req.Hours, req.Description,
		req.CorrectionDate, req.ProposedCheckInAt, req.ProposedCheckOutAt, req.CorrectionReason,
		req.SummaryMonth, req.SummaryYear, req.SummaryNote,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return approval.Request{}, fmt.Errorf("failed to create approval request: %w", err)
	}

	return req, nil
}

// GetByID implements approval.RequestRepository.
func (a *approvalRequestRepository) GetByID(ctx context.Context, id string, companyID string) (approval.Request, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + approvalRequestColumns + `
		FROM approval_requests ar
		JOIN employees e ON e.id = ar.requester_id
		WHERE ar.id = $1 AND ar.company_id = $2
	`

	var req approval.Request
	if err := scanApprovalRequest(q.QueryRow(ctx, query, id, companyID), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Request{}, approval.ErrRequestNotFound
		}
		return approval.Request{}, fmt.Errorf("failed to get approval request by ID: %w", err)
	}

	return req, nil
}

// TransitionStatus implements approval.RequestRepository. The status guard
// serializes concurrent transitions on one request; the loser of the race
// gets ErrInvalidTransition.
func (a *approvalRequestRepository) TransitionStatus(ctx context.Context, req approval.Request, expected approval.Status) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE approval_requests
		SET status = $1,
			level1_approved_by = $2,
			level1_approved_at = $3,
			final_approved_by = $4,
			final_approved_at = $5,
			level1_rejected_by = $6,
			level1_rejected_at = $7,
			final_rejected_by = $8,
			final_rejected_at = $9,
			rejection_reason = $10,
			overtime_amount = $11,
			updated_at = NOW()
		WHERE id = $12
		  AND company_id = $13
		  AND status = $14
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status,
		req.Level1ApprovedBy, req.Level1ApprovedAt,
		req.FinalApprovedBy, req.FinalApprovedAt,
		req.Level1RejectedBy, req.Level1RejectedAt,
		req.FinalRejectedBy, req.FinalRejectedAt,
		req.RejectionReason,
		req.OvertimeAmount,
		req.ID, req.CompanyID, expected,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.ErrInvalidTransition
		}
		return fmt.Errorf("failed to transition approval request: %w", err)
	}

	return nil
}

// List implements approval.RequestRepository.
func (a *approvalRequestRepository) List(ctx context.Context, filter approval.ListFilter, companyID string) ([]approval.Request, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "ar.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Kind != nil && *filter.Kind != "" {
		baseWhere += fmt.Sprintf(" AND ar.kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND ar.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.RequesterID != nil && *filter.RequesterID != "" {
		baseWhere += fmt.Sprintf(" AND ar.requester_id = $%d", argIdx)
		args = append(args, *filter.RequesterID)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM approval_requests ar
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count approval requests: %w", err)
	}

	orderByField := "ar.created_at"
	switch filter.SortBy {
	case "updated_at":
		orderByField = "ar.updated_at"
	case "status":
		orderByField = "ar.status"
	case "kind":
		orderByField = "ar.kind"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+approvalRequestColumns+`
		FROM approval_requests ar
		JOIN employees e ON e.id = ar.requester_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query approval requests: %w", err)
	}
	defer rows.Close()

	var requests []approval.Request
	for rows.Next() {
		var req approval.Request
		if err := scanApprovalRequest(rows, &req); err != nil {
			return nil, 0, fmt.Errorf("failed to scan approval request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}
