package qr

import "time"

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	StationID *string
}

type GetListResponse struct {
	QrID      *string   `json:"qr_id"`
	StationID *string   `json:"station_id"`
	ExpiredAt time.Time `json:"expired_at"`
	CreatedAt time.Time `json:"created_at"`
}
