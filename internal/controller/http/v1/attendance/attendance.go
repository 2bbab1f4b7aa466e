package attendance

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/auth"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/attendance"
	"github.com/GabrielArdy/sigap-backend/internal/service/checkin"
	"github.com/GabrielArdy/sigap-backend/internal/service/report"

	"github.com/pkg/errors"
)

type Controller struct {
	scan       Scanner
	attendance Attendance
}

func NewController(scan Scanner, attendance Attendance) *Controller {
	return &Controller{scan: scan, attendance: attendance}
}

// CheckIn records an arrival scan. The user comes from the token claims,
// never from the body.
func (uc Controller) CheckIn(c *web.Context) error {
	req, err := uc.scanRequest(c)
	if err != nil {
		return c.RespondError(err)
	}

	record, err := uc.scan.CheckIn(c.Ctx, req)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   record,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CheckOut(c *web.Context) error {
	req, err := uc.scanRequest(c)
	if err != nil {
		return c.RespondError(err)
	}

	record, err := uc.scan.CheckOut(c.Ctx, req)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   record,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) scanRequest(c *web.Context) (checkin.ScanRequest, error) {
	var req checkin.ScanRequest

	if err := c.BindFunc(&req, "Location", "QRData"); err != nil {
		return checkin.ScanRequest{}, err
	}

	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return checkin.ScanRequest{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	req.UserID = claims.UserId

	if req.ScannedAt.IsZero() {
		req.ScannedAt = time.Now().UTC()
	}

	return req, nil
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if stationID, ok := c.GetQueryFunc(reflect.String, "station_id").(*string); ok {
		filter.StationID = stationID
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

// GetHistory lists the calling user's own records.
func (uc Controller) GetHistory(c *web.Context) error {
	var filter attendance.HistoryFilter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if from, ok := c.GetQueryFunc(reflect.String, "from").(*string); ok {
		filter.From = from
	}
	if to, ok := c.GetQueryFunc(reflect.String, "to").(*string); ok {
		filter.To = to
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	claims, ok := c.Ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized))
	}

	list, count, err := uc.attendance.GetHistoryByUserID(c.Ctx, claims.UserId, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDashboard(c *web.Context) error {
	response, err := uc.attendance.GetDashboard(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// ExportMonthly streams the month's attendance as a xlsx download.
func (uc Controller) ExportMonthly(c *web.Context) error {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if y, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && y != nil {
		year = *y
	}
	if m, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok && m != nil {
		if *m < 1 || *m > 12 {
			return c.RespondError(web.NewRequestError(errors.New("month must be between 1 and 12"), http.StatusBadRequest))
		}
		month = time.Month(*m)
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	rows, err := uc.attendance.GetMonthlyReport(c.Ctx, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	reportRows := make([]report.Row, 0, len(rows))
	for _, row := range rows {
		reportRows = append(reportRows, report.Row{
			UserID:      deref(row.UserID),
			FirstName:   deref(row.FirstName),
			LastName:    deref(row.LastName),
			Nip:         deref(row.Nip),
			WorkDay:     row.WorkDay,
			Status:      deref(row.Status),
			CheckIn:     row.CheckIn,
			CheckOut:    row.CheckOut,
			StationName: deref(row.StationName),
		})
	}

	buf, err := report.MonthlyExcel(reportRows, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	filename := fmt.Sprintf("attendance-%04d-%02d.xlsx", year, int(month))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
