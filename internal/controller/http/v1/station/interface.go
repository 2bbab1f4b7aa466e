package station

import (
	"context"

	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/station"
)

type Station interface {
	GetList(ctx context.Context, filter station.Filter) ([]station.GetListResponse, int, error)
	GetDetailByStationID(ctx context.Context, stationID string) (station.GetDetailResponse, error)
	Create(ctx context.Context, request station.CreateRequest) (station.CreateResponse, error)
	UpdateColumns(ctx context.Context, request station.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
