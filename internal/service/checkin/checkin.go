package checkin

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"
	"github.com/GabrielArdy/sigap-backend/internal/service/geo"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrcode"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"

	"github.com/pkg/errors"
)

// Service validates a scanned station token and applies the result to the
// user's day record. Validation is ordered cheapest first: structure,
// signature, expiry, station existence, geometry. A forged or expired
// token never learns whether its station exists.
type Service struct {
	stations StationStore
	manager  *Manager
	signer   *qrsign.Signer
}

func New(stations StationStore, store AttendanceStore, signer *qrsign.Signer) *Service {
	return &Service{
		stations: stations,
		manager:  NewManager(store),
		signer:   signer,
	}
}

// Manager exposes the day-record manager for collaborators that bypass
// the scan pipeline (leave approval).
func (s *Service) Manager() *Manager {
	return s.manager
}

// CheckIn runs the scan pipeline and records a check-in.
func (s *Service) CheckIn(ctx context.Context, req ScanRequest) (entity.Attendance, error) {
	station, err := s.validate(ctx, req)
	if err != nil {
		return entity.Attendance{}, err
	}

	return s.manager.ApplyCheckIn(ctx, req.UserID, *station.StationID, req.ScannedAt)
}

// CheckOut runs the same pipeline and closes today's record.
func (s *Service) CheckOut(ctx context.Context, req ScanRequest) (entity.Attendance, error) {
	station, err := s.validate(ctx, req)
	if err != nil {
		return entity.Attendance{}, err
	}

	return s.manager.ApplyCheckOut(ctx, req.UserID, *station.StationID, req.ScannedAt)
}

func (s *Service) validate(ctx context.Context, req ScanRequest) (entity.Station, error) {
	if err := requiredFields(req); err != nil {
		return entity.Station{}, err
	}

	payload := qrcode.Payload(req.QRData.StationID, req.QRData.ExpiredAt)
	if !s.signer.Verify(payload, req.QRData.Signature) {
		return entity.Station{}, web.NewRequestError(ErrInvalidSignature, http.StatusUnauthorized)
	}

	expiredAt, err := time.Parse(qrcode.TimeLayout, req.QRData.ExpiredAt)
	if err != nil {
		return entity.Station{}, web.NewRequestError(errors.Wrap(err, "parsing token expiry"), http.StatusBadRequest)
	}
	if req.ScannedAt.After(expiredAt) {
		return entity.Station{}, web.NewRequestError(ErrTokenExpired, http.StatusBadRequest)
	}

	station, err := s.stations.GetByStationID(ctx, req.QRData.StationID)
	if errors.Is(err, postgres.ErrNotFound) {
		return entity.Station{}, web.NewRequestError(ErrStationNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Station{}, errors.Wrap(err, "resolving station")
	}

	distance, err := geo.DistanceMeters(
		req.Location.Latitude, req.Location.Longitude,
		station.Latitude, station.Longitude,
	)
	if err != nil {
		return entity.Station{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	if distance > station.RadiusThreshold {
		outOfRange := &OutOfRangeError{DistanceMeters: distance, ThresholdMeters: station.RadiusThreshold}
		return entity.Station{}, web.NewRequestError(outOfRange, http.StatusForbidden)
	}

	// The scan proves the station's QR display is alive.
	if err := s.stations.TouchLastActive(ctx, *station.StationID, req.ScannedAt); err != nil {
		log.Printf("touching last_active for station %s: %v", *station.StationID, err)
	}

	return station, nil
}

func requiredFields(req ScanRequest) error {
	var fields []web.FieldError

	if req.UserID == "" {
		fields = append(fields, web.FieldError{Field: "user_id", Error: "required"})
	}
	if req.ScannedAt.IsZero() {
		fields = append(fields, web.FieldError{Field: "scanned_at", Error: "required"})
	}
	if req.Location == nil {
		fields = append(fields, web.FieldError{Field: "location", Error: "required"})
	}
	switch {
	case req.QRData == nil:
		fields = append(fields, web.FieldError{Field: "qr_data", Error: "required"})
	default:
		if req.QRData.StationID == "" {
			fields = append(fields, web.FieldError{Field: "qr_data.stationId", Error: "required"})
		}
		if req.QRData.ExpiredAt == "" {
			fields = append(fields, web.FieldError{Field: "qr_data.expiredAt", Error: "required"})
		}
		if req.QRData.Signature == "" {
			fields = append(fields, web.FieldError{Field: "qr_data.signature", Error: "required"})
		}
	}

	if len(fields) > 0 {
		return &web.Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}
