package qr

import (
	"context"

	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/qr"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/station"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrcode"
)

type Issuer interface {
	Issue(ctx context.Context, stationID string) (qrcode.IssueResponse, error)
	ActiveToken(ctx context.Context, stationID string) (qrcode.TokenData, bool)
}

type Audit interface {
	GetList(ctx context.Context, filter qr.Filter) ([]qr.GetListResponse, int, error)
}

type Stations interface {
	GetDetailByStationID(ctx context.Context, stationID string) (station.GetDetailResponse, error)
}
