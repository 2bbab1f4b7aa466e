package checkin

import (
	"context"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
)

// Location is the device GPS fix at scan time.
type Location struct {
	Latitude  float64 `json:"latitude" form:"latitude"`
	Longitude float64 `json:"longitude" form:"longitude"`
}

// QRData is the token as decoded from the scanned QR image. ExpiredAt is
// kept as the raw wire string so the signature check sees exactly the
// bytes the issuer signed.
type QRData struct {
	StationID string `json:"stationId" form:"stationId"`
	ExpiredAt string `json:"expiredAt" form:"expiredAt"`
	Signature string `json:"signature" form:"signature"`
}

// ScanRequest is one check-in or check-out attempt.
type ScanRequest struct {
	UserID    string    `json:"user_id" form:"user_id"`
	ScannedAt time.Time `json:"scanned_at" form:"scanned_at"`
	Location  *Location `json:"location" form:"location"`
	QRData    *QRData   `json:"qr_data" form:"qr_data"`
}

// StationStore is the station lookup the protocol depends on.
type StationStore interface {
	GetByStationID(ctx context.Context, stationID string) (entity.Station, error)
	TouchLastActive(ctx context.Context, stationID string, at time.Time) error
}

// AttendanceStore persists day records. Create must report a
// postgres.ErrAlreadyExists when the (user, day) uniqueness constraint
// rejects a row, the manager falls back to an update.
type AttendanceStore interface {
	FindTodayRecord(ctx context.Context, userID string, day time.Time) (entity.Attendance, error)
	Create(ctx context.Context, record entity.Attendance) (entity.Attendance, error)
	Update(ctx context.Context, record entity.Attendance) (entity.Attendance, error)
}
