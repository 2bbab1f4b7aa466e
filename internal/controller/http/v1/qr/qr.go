package qr

import (
	"encoding/base64"
	"net/http"
	"reflect"
	"strings"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres/qr"
	"github.com/GabrielArdy/sigap-backend/internal/service/report"

	"github.com/pkg/errors"
)

type Controller struct {
	issuer   Issuer
	audit    Audit
	stations Stations
}

func NewController(issuer Issuer, audit Audit, stations Stations) *Controller {
	return &Controller{issuer: issuer, audit: audit, stations: stations}
}

// Generate issues a fresh signed token for the station and returns the
// QR image as a data URI.
func (uc Controller) Generate(c *web.Context) error {
	var request GenerateRequest

	if err := c.BindFunc(&request, "StationID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.issuer.Issue(c.Ctx, request.StationID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// LatestActive serves the still-valid token for a station from the cache.
// Display clients poll this instead of forcing a re-issue.
func (uc Controller) LatestActive(c *web.Context) error {
	stationID := c.GetParam(reflect.String, "station_id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	token, ok := uc.issuer.ActiveToken(c.Ctx, stationID)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.New("no active token for station"), http.StatusNotFound))
	}

	return c.Respond(map[string]interface{}{
		"data":   token,
		"status": true,
	}, http.StatusOK)
}

// Poster issues a fresh token and renders it as a printable PDF page for
// the station.
func (uc Controller) Poster(c *web.Context) error {
	stationID := c.GetParam(reflect.String, "station_id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.stations.GetDetailByStationID(c.Ctx, stationID)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.issuer.Issue(c.Ctx, stationID)
	if err != nil {
		return c.RespondError(err)
	}

	encoded := strings.TrimPrefix(response.QRCode, "data:image/png;base64,")
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return c.RespondError(errors.Wrap(err, "decoding qr image"))
	}

	name := stationID
	if detail.Name != nil {
		name = *detail.Name
	}

	pdf, err := report.StationPoster(name, stationID, png)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", `attachment; filename="station-`+stationID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)

	return nil
}

func (uc Controller) GetAuditList(c *web.Context) error {
	var filter qr.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if stationID, ok := c.GetQueryFunc(reflect.String, "station_id").(*string); ok {
		filter.StationID = stationID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.audit.GetList(c.Ctx, filter)
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

type GenerateRequest struct {
	StationID string `json:"station_id" form:"station_id"`
}
