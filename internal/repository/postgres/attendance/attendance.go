package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// FindTodayRecord loads the single day record for a user. day must already
// be truncated to midnight, the query compares on the date column only.
func (r Repository) FindTodayRecord(ctx context.Context, userID string, day time.Time) (entity.Attendance, error) {
	var detail entity.Attendance

	err := r.NewSelect().Model(&detail).
		Where("deleted_at IS NULL AND user_id = ? AND work_day = ?", userID, day.Format("2006-01-02")).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Attendance{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.Attendance{}, errors.Wrap(err, "selecting attendance")
	}

	return detail, nil
}

// Create inserts a day record. A unique violation on (user_id, work_day)
// is reported as postgres.ErrAlreadyExists so callers can retry as an
// update instead of surfacing a 500.
func (r Repository) Create(ctx context.Context, record entity.Attendance) (entity.Attendance, error) {
	record.CreatedAt = time.Now()

	_, err := r.NewInsert().Model(&record).Returning("id").Exec(ctx, &record.ID)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
			return entity.Attendance{}, postgres.ErrAlreadyExists
		}
		return entity.Attendance{}, errors.Wrap(err, "creating attendance")
	}

	return record, nil
}

func (r Repository) Update(ctx context.Context, record entity.Attendance) (entity.Attendance, error) {
	now := time.Now()
	record.UpdatedAt = &now

	q := r.NewUpdate().Table("attendance").
		Where("deleted_at IS NULL AND id = ?", record.ID)
	q.Set("check_in = ?", record.CheckIn)
	q.Set("check_out = ?", record.CheckOut)
	q.Set("attendance_status = ?", record.Status)
	q.Set("station_id = ?", record.StationID)
	q.Set("updated_at = ?", record.UpdatedAt)

	if _, err := q.Exec(ctx); err != nil {
		return entity.Attendance{}, errors.Wrap(err, "updating attendance")
	}

	return record, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
		(u.nip ilike '%s' OR u.first_name ilike '%s' OR u.last_name ilike '%s')`,
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND a.attendance_status = '%s'", status)
	}
	if filter.StationID != nil {
		stationID := strings.Replace(*filter.StationID, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND a.station_id = '%s'", stationID)
	}

	if filter.Date != nil {
		parsed, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_day = '%s'", parsed.Format("2006-01-02"))
	} else {
		whereQuery += fmt.Sprintf(" AND a.work_day = '%s'", time.Now().Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.check_in desc NULLS LAST"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.attendance_id,
			a.user_id,
			u.first_name,
			u.last_name,
			u.nip,
			a.work_day,
			a.attendance_status,
			a.check_in,
			a.check_out,
			a.station_id,
			s.station_name
		FROM attendance a
			LEFT JOIN users u ON a.user_id = u.user_id
			LEFT JOIN stations s ON a.station_id = s.station_id
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance list"), http.StatusInternalServerError)
	}

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.AttendanceID,
			&detail.UserID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Nip,
			&detail.WorkDay,
			&detail.Status,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.StationID,
			&detail.StationName); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
			LEFT JOIN users u ON a.user_id = u.user_id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetHistoryByUserID pages through one user's own records, newest day
// first. Interval defaults to the current month.
func (r Repository) GetHistoryByUserID(ctx context.Context, userID string, filter HistoryFilter) ([]GetHistoryResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := fmt.Sprintf(`
		WHERE
			a.deleted_at IS NULL AND a.user_id = '%s'
		`, strings.Replace(userID, "'", "''", -1))

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if filter.From != nil {
		if from, err = time.Parse("2006-01-02", *filter.From); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "from parse"), http.StatusBadRequest)
		}
	}
	if filter.To != nil {
		if to, err = time.Parse("2006-01-02", *filter.To); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "to parse"), http.StatusBadRequest)
		}
		to = to.AddDate(0, 0, 1)
	}
	whereQuery += fmt.Sprintf(" AND a.work_day >= '%s' AND a.work_day < '%s'",
		from.Format("2006-01-02"), to.Format("2006-01-02"))

	orderQuery := "ORDER BY a.work_day desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			a.attendance_id,
			a.work_day,
			a.attendance_status,
			a.check_in,
			a.check_out,
			a.station_id
		FROM attendance a
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance history"), http.StatusInternalServerError)
	}

	var list []GetHistoryResponse
	for rows.Next() {
		var detail GetHistoryResponse
		if err = rows.Scan(
			&detail.AttendanceID,
			&detail.WorkDay,
			&detail.Status,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.StationID); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance history"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(a.id)
		FROM attendance a
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning history count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetMonthlyReport loads every record of one calendar month for the xlsx
// export, ordered by day then user.
func (r Repository) GetMonthlyReport(ctx context.Context, year int, month time.Month) ([]ReportRow, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := fmt.Sprintf(`
		SELECT
			a.user_id,
			u.first_name,
			u.last_name,
			u.nip,
			a.work_day,
			a.attendance_status,
			a.check_in,
			a.check_out,
			s.station_name
		FROM attendance a
			LEFT JOIN users u ON a.user_id = u.user_id
			LEFT JOIN stations s ON a.station_id = s.station_id
		WHERE
			a.deleted_at IS NULL
			AND a.work_day >= '%s' AND a.work_day < '%s'
		ORDER BY a.work_day, a.user_id
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting monthly report"), http.StatusInternalServerError)
	}

	var list []ReportRow
	for rows.Next() {
		var detail ReportRow
		if err = rows.Scan(
			&detail.UserID,
			&detail.FirstName,
			&detail.LastName,
			&detail.Nip,
			&detail.WorkDay,
			&detail.Status,
			&detail.CheckIn,
			&detail.CheckOut,
			&detail.StationName); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning monthly report"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	return list, nil
}

// GetDashboard counts today's checked-in and completed records for the
// admin landing page.
func (r Repository) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	today := time.Now().Format("2006-01-02")

	var response DashboardResponse
	query := fmt.Sprintf(`
		SELECT
			count(id) FILTER (WHERE attendance_status = '%s'),
			count(id) FILTER (WHERE attendance_status = '%s'),
			count(id) FILTER (WHERE attendance_status = '%s'),
			count(id) FILTER (WHERE attendance_status = '%s')
		FROM attendance
		WHERE deleted_at IS NULL AND work_day = '%s'
	`, entity.StatusCheckedIn, entity.StatusCompleted, entity.StatusLeave, entity.StatusSick, today)

	if err = r.QueryRowContext(ctx, query).Scan(
		&response.CheckedIn,
		&response.Completed,
		&response.OnLeave,
		&response.Sick); err != nil {
		return DashboardResponse{}, web.NewRequestError(errors.Wrap(err, "scanning dashboard"), http.StatusInternalServerError)
	}

	response.Date = today

	return response, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}
