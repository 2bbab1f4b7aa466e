package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Leave request approval states and kinds.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"

	RequestLeave = "leave"
	RequestSick  = "sick"
)

type LeaveRequest struct {
	bun.BaseModel `bun:"table:leave_requests"`

	BasicEntity
	RequestID       *string   `json:"request_id" bun:"request_id"`
	RequestType     *string   `json:"request_type" bun:"request_type"`
	RequesterID     *string   `json:"requester_id" bun:"requester_id"`
	StartDate       time.Time `json:"requested_start_date" bun:"requested_start_date"`
	EndDate         time.Time `json:"requested_end_date" bun:"requested_end_date"`
	Description     *string   `json:"description" bun:"description"`
	Attachment      *string   `json:"attachment" bun:"attachment"`
	ApprovalStatus  *string   `json:"approval_status" bun:"approval_status"`
	ApproverID      *string   `json:"approver_id" bun:"approver_id"`
	ApproverComment *string   `json:"approver_comment" bun:"approver_comment"`
}
