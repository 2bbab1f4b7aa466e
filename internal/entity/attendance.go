package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses. A day record moves A -> P on check-out; L and S are
// written by leave approval and never by the scan flow.
const (
	StatusCheckedIn = "A"
	StatusCompleted = "P"
	StatusLeave     = "L"
	StatusSick      = "S"
)

// Attendance is the single record of one user's attendance for one
// calendar day. CheckOut stays NULL until the user checks out; there is no
// epoch sentinel.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	AttendanceID *string    `json:"attendance_id" bun:"attendance_id"`
	UserID       *string    `json:"user_id" bun:"user_id"`
	WorkDay      time.Time  `json:"date" bun:"work_day"`
	CheckIn      *time.Time `json:"check_in" bun:"check_in"`
	CheckOut     *time.Time `json:"check_out" bun:"check_out"`
	Status       *string    `json:"attendance_status" bun:"attendance_status"`
	StationID    *string    `json:"station_id" bun:"station_id"`
}
