package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Station statuses.
const (
	StationActive  = "active"
	StationOffline = "offline"
)

type Station struct {
	bun.BaseModel `bun:"table:stations"`

	BasicEntity
	StationID *string `json:"station_id" bun:"station_id"`
	Name      *string `json:"station_name" bun:"station_name"`
	Latitude  float64 `json:"latitude" bun:"latitude"`
	Longitude float64 `json:"longitude" bun:"longitude"`
	// RadiusThreshold is the geofence acceptance radius in meters.
	RadiusThreshold float64    `json:"radius_threshold" bun:"radius_threshold"`
	Status          *string    `json:"station_status" bun:"station_status"`
	LastActive      *time.Time `json:"last_active" bun:"last_active"`
}
