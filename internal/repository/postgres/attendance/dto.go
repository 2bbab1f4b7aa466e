package attendance

import "time"

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	Search    *string
	Status    *string
	StationID *string
	Date      *string
}

type HistoryFilter struct {
	Limit  *int
	Offset *int
	Page   *int
	From   *string
	To     *string
}

type GetListResponse struct {
	AttendanceID *string    `json:"attendance_id"`
	UserID       *string    `json:"user_id"`
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Nip          *string    `json:"nip"`
	WorkDay      time.Time  `json:"work_day"`
	Status       *string    `json:"attendance_status"`
	CheckIn      *time.Time `json:"check_in"`
	CheckOut     *time.Time `json:"check_out"`
	StationID    *string    `json:"station_id"`
	StationName  *string    `json:"station_name"`
}

type GetHistoryResponse struct {
	AttendanceID *string    `json:"attendance_id"`
	WorkDay      time.Time  `json:"work_day"`
	Status       *string    `json:"attendance_status"`
	CheckIn      *time.Time `json:"check_in"`
	CheckOut     *time.Time `json:"check_out"`
	StationID    *string    `json:"station_id"`
}

type ReportRow struct {
	UserID      *string    `json:"user_id"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Nip         *string    `json:"nip"`
	WorkDay     time.Time  `json:"work_day"`
	Status      *string    `json:"attendance_status"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	StationName *string    `json:"station_name"`
}

type DashboardResponse struct {
	Date      string `json:"date"`
	CheckedIn int    `json:"checked_in"`
	Completed int    `json:"completed"`
	OnLeave   int    `json:"on_leave"`
	Sick      int    `json:"sick"`
}
