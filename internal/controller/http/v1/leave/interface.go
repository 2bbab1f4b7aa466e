package leave

import (
	"context"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/leave"
)

type Leave interface {
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	Create(ctx context.Context, request leave.CreateRequest) (leave.CreateResponse, error)
	UpdateApproval(ctx context.Context, request leave.ApprovalRequest) (entity.LeaveRequest, error)
	Delete(ctx context.Context, id int) error
}

type Absences interface {
	ApplyLeaveOrSick(ctx context.Context, userID string, start, end time.Time, kind string) error
}
