package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// QR is the audit row written for every issued station token. It is a
// write-only log: verification never consults it.
type QR struct {
	bun.BaseModel `bun:"table:qr_audit"`

	BasicEntity
	QrID      *string   `json:"qr_id" bun:"qr_id"`
	QrImage   *string   `json:"qr_image" bun:"qr_image"`
	QrToken   *string   `json:"qr_token" bun:"qr_token"`
	ExpiredAt time.Time `json:"expired_at" bun:"expired_at"`
	StationID *string   `json:"station_id" bun:"station_id"`
}
