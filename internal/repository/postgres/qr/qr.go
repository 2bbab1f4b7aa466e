package qr

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create appends one audit row per issued token.
func (r Repository) Create(ctx context.Context, record entity.QR) error {
	record.CreatedAt = time.Now()

	_, err := r.NewInsert().Model(&record).Returning("id").Exec(ctx, &record.ID)
	if err != nil {
		return errors.Wrap(err, "creating qr audit")
	}

	return nil
}

// GetList pages the audit trail for a station, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			q.deleted_at IS NULL
		`

	if filter.StationID != nil {
		stationID := strings.Replace(*filter.StationID, "'", "''", -1)
		whereQuery += fmt.Sprintf(" AND q.station_id = '%s'", stationID)
	}

	orderQuery := "ORDER BY q.created_at desc"

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
			q.qr_id,
			q.station_id,
			q.expired_at,
			q.created_at
		FROM qr_audit q
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting qr audit"), http.StatusInternalServerError)
	}

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.QrID,
			&detail.StationID,
			&detail.ExpiredAt,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning qr audit"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(q.id)
		FROM qr_audit q
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning qr audit count"), http.StatusInternalServerError)
	}

	return list, count, nil
}
