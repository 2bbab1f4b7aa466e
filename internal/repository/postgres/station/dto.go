package station

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Status *string
}

type GetListResponse struct {
	ID              int        `json:"id"`
	StationID       *string    `json:"station_id"`
	Name            *string    `json:"name"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	RadiusThreshold float64    `json:"radius_threshold"`
	Status          *string    `json:"status"`
	LastActive      *time.Time `json:"last_active"`
}

type GetDetailResponse struct {
	ID              int        `json:"id"`
	StationID       *string    `json:"station_id"`
	Name            *string    `json:"name"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	RadiusThreshold float64    `json:"radius_threshold"`
	Status          *string    `json:"status"`
	LastActive      *time.Time `json:"last_active"`
}

type CreateRequest struct {
	StationID       *string  `json:"station_id" form:"station_id"`
	Name            *string  `json:"name" form:"name"`
	Latitude        *float64 `json:"latitude" form:"latitude"`
	Longitude       *float64 `json:"longitude" form:"longitude"`
	RadiusThreshold *float64 `json:"radius_threshold" form:"radius_threshold"`
	Status          *string  `json:"status" form:"status"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:stations"`

	ID              int       `json:"id" bun:"-"`
	StationID       *string   `json:"station_id" bun:"station_id"`
	Name            *string   `json:"name" bun:"station_name"`
	Latitude        float64   `json:"latitude" bun:"latitude"`
	Longitude       float64   `json:"longitude" bun:"longitude"`
	RadiusThreshold float64   `json:"radius_threshold" bun:"radius_threshold"`
	Status          *string   `json:"status" bun:"station_status"`
	CreatedAt       time.Time `json:"-" bun:"created_at"`
	CreatedBy       string    `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	StationID       *string  `json:"station_id" form:"station_id"`
	Name            *string  `json:"name" form:"name"`
	Latitude        *float64 `json:"latitude" form:"latitude"`
	Longitude       *float64 `json:"longitude" form:"longitude"`
	RadiusThreshold *float64 `json:"radius_threshold" form:"radius_threshold"`
	Status          *string  `json:"status" form:"status"`
}
