package leave

import (
	"net/http"
	"reflect"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/leave"
)

type Controller struct {
	leave    Leave
	absences Absences
}

func NewController(leave Leave, absences Absences) *Controller {
	return &Controller{leave: leave, absences: absences}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter leave.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if status, ok := c.GetQueryFunc(reflect.String, "approval_status").(*string); ok {
		filter.ApprovalStatus = status
	}
	if kind, ok := c.GetQueryFunc(reflect.String, "request_type").(*string); ok {
		filter.RequestType = kind
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.leave.GetList(c.Ctx, filter)
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

func (uc Controller) Create(c *web.Context) error {
	var request leave.CreateRequest

	if err := c.BindFunc(&request, "RequestType", "StartDate", "EndDate"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.leave.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// Approve decides a pending request. An approval immediately writes the
// per-day attendance records over the requested interval.
func (uc Controller) Approve(c *web.Context) error {
	var request leave.ApprovalRequest

	if err := c.BindFunc(&request, "RequestID", "ApprovalStatus"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.leave.UpdateApproval(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	if *request.ApprovalStatus == entity.ApprovalApproved {
		if err := uc.absences.ApplyLeaveOrSick(c.Ctx, *detail.RequesterID, detail.StartDate, detail.EndDate, *detail.RequestType); err != nil {
			return c.RespondError(err)
		}
	}

	return c.Respond(map[string]interface{}{
		"data":   detail,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.leave.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
