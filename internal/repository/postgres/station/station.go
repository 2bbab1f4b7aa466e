package station

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
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByStationID resolves a station by its business id. Used by the scan
// pipeline, so a missing row maps to postgres.ErrNotFound rather than a
// request error.
func (r Repository) GetByStationID(ctx context.Context, stationID string) (entity.Station, error) {
	var detail entity.Station

	err := r.NewSelect().Model(&detail).
		Where("station_id = ? AND deleted_at IS NULL", stationID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Station{}, postgres.ErrNotFound
	}
	if err != nil {
		return entity.Station{}, errors.Wrap(err, "selecting station")
	}

	return detail, nil
}

// TouchLastActive stamps the station as recently seen and flips it back
// to active.
func (r Repository) TouchLastActive(ctx context.Context, stationID string, at time.Time) error {
	q := r.NewUpdate().Table("stations").
		Where("deleted_at IS NULL AND station_id = ?", stationID)
	q.Set("last_active = ?", at)
	q.Set("station_status = ?", entity.StationActive)

	_, err := q.Exec(ctx)
	return err
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			s.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND
		(s.station_id ilike '%s' OR s.station_name ilike '%s')`, "%"+search+"%", "%"+search+"%")
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND s.station_status = '%s'", status)
	}

	orderQuery := "ORDER BY s.created_at desc"

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
			s.id,
			s.station_id,
			s.station_name,
			s.latitude,
			s.longitude,
			s.radius_threshold,
			s.station_status,
			s.last_active
		FROM stations s
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting stations"), http.StatusInternalServerError)
	}

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.StationID,
			&detail.Name,
			&detail.Latitude,
			&detail.Longitude,
			&detail.RadiusThreshold,
			&detail.Status,
			&detail.LastActive); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning station list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(s.id)
		FROM stations s
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning station count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailByStationID(ctx context.Context, stationID string) (GetDetailResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailResponse{}, err
	}

	station, err := r.GetByStationID(ctx, stationID)
	if errors.Is(err, postgres.ErrNotFound) {
		return GetDetailResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return GetDetailResponse{
		ID:              station.ID,
		StationID:       station.StationID,
		Name:            station.Name,
		Latitude:        station.Latitude,
		Longitude:       station.Longitude,
		RadiusThreshold: station.RadiusThreshold,
		Status:          station.Status,
		LastActive:      station.LastActive,
	}, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "StationID", "Name", "Latitude", "Longitude", "RadiusThreshold"); err != nil {
		return CreateResponse{}, err
	}

	if *request.RadiusThreshold <= 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("radius_threshold must be greater than zero"), http.StatusBadRequest)
	}

	stationExists := true
	if err := r.QueryRowContext(ctx,
		`SELECT CASE WHEN
			(SELECT id FROM stations WHERE station_id = $1 AND deleted_at IS NULL) IS NOT NULL
			THEN true ELSE false END`, *request.StationID).Scan(&stationExists); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "station_id check"), http.StatusInternalServerError)
	}
	if stationExists {
		return CreateResponse{}, web.NewRequestError(errors.New("station_id is used"), http.StatusBadRequest)
	}

	status := entity.StationOffline
	if request.Status != nil {
		status = *request.Status
	}
	if status != entity.StationActive && status != entity.StationOffline {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect status. status should be active or offline"), http.StatusBadRequest)
	}

	var response CreateResponse
	response.StationID = request.StationID
	response.Name = request.Name
	response.Latitude = *request.Latitude
	response.Longitude = *request.Longitude
	response.RadiusThreshold = *request.RadiusThreshold
	response.Status = &status
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating station"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "StationID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("stations").Where("deleted_at IS NULL AND station_id = ?", request.StationID)

	if request.Name != nil {
		q.Set("station_name = ?", request.Name)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", request.Longitude)
	}
	if request.RadiusThreshold != nil {
		if *request.RadiusThreshold <= 0 {
			return web.NewRequestError(errors.New("radius_threshold must be greater than zero"), http.StatusBadRequest)
		}
		q.Set("radius_threshold = ?", request.RadiusThreshold)
	}
	if request.Status != nil {
		if *request.Status != entity.StationActive && *request.Status != entity.StationOffline {
			return web.NewRequestError(errors.New("incorrect status. status should be active or offline"), http.StatusBadRequest)
		}
		q.Set("station_status = ?", request.Status)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	_, err = q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating station"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "stations", id)
}
