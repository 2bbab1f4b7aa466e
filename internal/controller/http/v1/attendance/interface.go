package attendance

import (
	"context"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/attendance"
	"github.com/GabrielArdy/sigap-backend/internal/service/checkin"
)

type Scanner interface {
	CheckIn(ctx context.Context, req checkin.ScanRequest) (entity.Attendance, error)
	CheckOut(ctx context.Context, req checkin.ScanRequest) (entity.Attendance, error)
}

type Attendance interface {
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetHistoryByUserID(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.GetHistoryResponse, int, error)
	GetMonthlyReport(ctx context.Context, year int, month time.Month) ([]attendance.ReportRow, error)
	GetDashboard(ctx context.Context) (attendance.DashboardResponse, error)
	Delete(ctx context.Context, id int) error
}
