package leave

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByRequestID(ctx context.Context, requestID string) (entity.LeaveRequest, error) {
	var detail entity.LeaveRequest

	err := r.NewSelect().Model(&detail).
		Where("deleted_at IS NULL AND request_id = ?", requestID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.LeaveRequest{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.LeaveRequest{}, errors.Wrap(err, "selecting leave request")
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			l.deleted_at IS NULL
		`

	// Employees only see their own requests.
	if claims.Role == auth.RoleEmployee {
		whereQuery += fmt.Sprintf(" AND l.requester_id = '%s'",
			strings.Replace(claims.UserId, "'", "''", -1))
	}

	if filter.ApprovalStatus != nil {
		status := strings.Replace(*filter.ApprovalStatus, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND l.approval_status = '%s'", status)
	}
	if filter.RequestType != nil {
		kind := strings.Replace(*filter.RequestType, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND l.request_type = '%s'", kind)
	}

	orderQuery := "ORDER BY l.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			l.request_id,
			l.request_type,
			l.requester_id,
			u.first_name,
			u.last_name,
			l.requested_start_date,
			l.requested_end_date,
			l.description,
			l.attachment,
			l.approval_status,
			l.approver_id,
			l.approver_comment
		FROM leave_requests l
			LEFT JOIN users u ON l.requester_id = u.user_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting leave requests"), http.StatusInternalServerError)
	}

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.RequestID,
			&detail.RequestType,
			&detail.RequesterID,
			&detail.FirstName,
			&detail.LastName,
			&detail.StartDate,
			&detail.EndDate,
			&detail.Description,
			&detail.Attachment,
			&detail.ApprovalStatus,
			&detail.ApproverID,
			&detail.ApproverComment); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave requests"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(l.id)
		FROM leave_requests l
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "RequestType", "StartDate", "EndDate"); err != nil {
		return CreateResponse{}, err
	}

	if *request.RequestType != entity.RequestLeave && *request.RequestType != entity.RequestSick {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect request_type. request_type should be leave or sick"), http.StatusBadRequest)
	}

	startDate := request.StartDate.Time
	endDate := request.EndDate.Time
	if endDate.Before(startDate) {
		return CreateResponse{}, web.NewRequestError(errors.New("end_date is before start_date"), http.StatusBadRequest)
	}

	requestID := uuid.NewString()
	pending := entity.ApprovalPending

	var response CreateResponse
	response.RequestID = &requestID
	response.RequestType = request.RequestType
	response.RequesterID = &claims.UserId
	response.StartDate = startDate
	response.EndDate = endDate
	response.Description = request.Description
	response.Attachment = request.Attachment
	response.ApprovalStatus = &pending
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating leave request"), http.StatusBadRequest)
	}

	return response, nil
}

// UpdateApproval moves a pending request to approved or rejected. The
// decision is final, approving an already decided request is an error.
func (r Repository) UpdateApproval(ctx context.Context, request ApprovalRequest) (entity.LeaveRequest, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.LeaveRequest{}, err
	}

	if err := r.ValidateStruct(&request, "RequestID", "ApprovalStatus"); err != nil {
		return entity.LeaveRequest{}, err
	}

	if *request.ApprovalStatus != entity.ApprovalApproved && *request.ApprovalStatus != entity.ApprovalRejected {
		return entity.LeaveRequest{}, web.NewRequestError(errors.New("incorrect approval_status. approval_status should be approved or rejected"), http.StatusBadRequest)
	}

	detail, err := r.GetByRequestID(ctx, *request.RequestID)
	if errors.Is(err, postgres.ErrNotFound) {
		return entity.LeaveRequest{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.LeaveRequest{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	if detail.ApprovalStatus != nil && *detail.ApprovalStatus != entity.ApprovalPending {
		return entity.LeaveRequest{}, web.NewRequestError(errors.New("request already decided"), http.StatusBadRequest)
	}

	now := time.Now()

	q := r.NewUpdate().Table("leave_requests").
		Where("deleted_at IS NULL AND request_id = ?", request.RequestID)
	q.Set("approval_status = ?", request.ApprovalStatus)
	q.Set("approver_id = ?", claims.UserId)
	if request.ApproverComment != nil {
		q.Set("approver_comment = ?", request.ApproverComment)
	}
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return entity.LeaveRequest{}, web.NewRequestError(errors.Wrap(err, "updating leave approval"), http.StatusBadRequest)
	}

	detail.ApprovalStatus = request.ApprovalStatus
	detail.ApproverID = &claims.UserId
	detail.ApproverComment = request.ApproverComment
	detail.UpdatedAt = &now

	return detail, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "leave_requests", id)
}
