package leave

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit          *int
	Offset         *int
	Page           *int
	ApprovalStatus *string
	RequestType    *string
}

type GetListResponse struct {
	RequestID       *string   `json:"request_id"`
	RequestType     *string   `json:"request_type"`
	RequesterID     *string   `json:"requester_id"`
	FirstName       *string   `json:"first_name"`
	LastName        *string   `json:"last_name"`
	StartDate       time.Time `json:"requested_start_date"`
	EndDate         time.Time `json:"requested_end_date"`
	Description     *string   `json:"description"`
	Attachment      *string   `json:"attachment"`
	ApprovalStatus  *string   `json:"approval_status"`
	ApproverID      *string   `json:"approver_id"`
	ApproverComment *string   `json:"approver_comment"`
}

type CreateRequest struct {
	RequestType *string    `json:"request_type" form:"request_type"`
	StartDate   *date.Date `json:"requested_start_date" form:"requested_start_date"`
	EndDate     *date.Date `json:"requested_end_date" form:"requested_end_date"`
	Description *string    `json:"description" form:"description"`
	Attachment  *string    `json:"attachment" form:"attachment"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:leave_requests"`

	ID             int       `json:"id" bun:"-"`
	RequestID      *string   `json:"request_id" bun:"request_id"`
	RequestType    *string   `json:"request_type" bun:"request_type"`
	RequesterID    *string   `json:"requester_id" bun:"requester_id"`
	StartDate      time.Time `json:"requested_start_date" bun:"requested_start_date"`
	EndDate        time.Time `json:"requested_end_date" bun:"requested_end_date"`
	Description    *string   `json:"description" bun:"description"`
	Attachment     *string   `json:"attachment" bun:"attachment"`
	ApprovalStatus *string   `json:"approval_status" bun:"approval_status"`
	CreatedAt      time.Time `json:"-" bun:"created_at"`
	CreatedBy      string    `json:"-" bun:"created_by"`
}

type ApprovalRequest struct {
	RequestID       *string `json:"request_id" form:"request_id"`
	ApprovalStatus  *string `json:"approval_status" form:"approval_status"`
	ApproverComment *string `json:"approver_comment" form:"approver_comment"`
}
