package checkin

import (
	"context"
	"net/http"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// leaveStationID marks records written by leave approval rather than a
// station scan.
const leaveStationID = "-"

// Manager owns the one-record-per-user-per-day invariant and the status
// transitions over it.
type Manager struct {
	store AttendanceStore
}

func NewManager(store AttendanceStore) *Manager {
	return &Manager{store: store}
}

// DayOf truncates a timestamp to the calendar day it belongs to.
func DayOf(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyCheckIn records a check-in, creating today's record or overwriting
// the check-in time of an existing one. Re-check-in is allowed and resets
// the status to checked-in even after a completed day; the last scan wins.
func (m *Manager) ApplyCheckIn(ctx context.Context, userID, stationID string, at time.Time) (entity.Attendance, error) {
	day := DayOf(at)

	record, err := m.store.FindTodayRecord(ctx, userID, day)
	switch {
	case err == nil:
		record.CheckIn = &at
		record.Status = ptr(entity.StatusCheckedIn)
		record.StationID = &stationID
		return m.store.Update(ctx, record)

	case errors.Is(err, postgres.ErrNotFound):
		record = newDayRecord(userID, stationID, day)
		record.CheckIn = &at
		record.Status = ptr(entity.StatusCheckedIn)

		created, err := m.store.Create(ctx, record)
		if errors.Is(err, postgres.ErrAlreadyExists) {
			// A concurrent check-in won the insert race. Re-read the row
			// the winner created and apply ours as an update.
			return m.applyCheckInAsUpdate(ctx, userID, stationID, day, at)
		}
		if err != nil {
			return entity.Attendance{}, errors.Wrap(err, "creating day record")
		}
		return created, nil

	default:
		return entity.Attendance{}, errors.Wrap(err, "looking up day record")
	}
}

func (m *Manager) applyCheckInAsUpdate(ctx context.Context, userID, stationID string, day time.Time, at time.Time) (entity.Attendance, error) {
	record, err := m.store.FindTodayRecord(ctx, userID, day)
	if err != nil {
		return entity.Attendance{}, errors.Wrap(err, "re-reading day record after insert conflict")
	}

	record.CheckIn = &at
	record.Status = ptr(entity.StatusCheckedIn)
	record.StationID = &stationID

	return m.store.Update(ctx, record)
}

// ApplyCheckOut closes today's record. A check-out without a prior
// check-in is a client error, not a new record.
func (m *Manager) ApplyCheckOut(ctx context.Context, userID, stationID string, at time.Time) (entity.Attendance, error) {
	record, err := m.store.FindTodayRecord(ctx, userID, DayOf(at))
	if errors.Is(err, postgres.ErrNotFound) {
		return entity.Attendance{}, web.NewRequestError(ErrNoCheckInRecord, http.StatusBadRequest)
	}
	if err != nil {
		return entity.Attendance{}, errors.Wrap(err, "looking up day record")
	}

	record.CheckOut = &at
	record.Status = ptr(entity.StatusCompleted)

	return m.store.Update(ctx, record)
}

// ApplyLeaveOrSick writes one record per calendar day over [start, end]
// inclusive, overwriting any day record already present. kind is
// entity.RequestLeave or entity.RequestSick.
func (m *Manager) ApplyLeaveOrSick(ctx context.Context, userID string, start, end time.Time, kind string) error {
	status := entity.StatusLeave
	if kind == entity.RequestSick {
		status = entity.StatusSick
	}

	for day := DayOf(start); !day.After(DayOf(end)); day = day.AddDate(0, 0, 1) {
		if err := m.applyAbsenceDay(ctx, userID, day, status); err != nil {
			return errors.Wrapf(err, "applying %s record for %s", kind, day.Format("2006-01-02"))
		}
	}

	return nil
}

func (m *Manager) applyAbsenceDay(ctx context.Context, userID string, day time.Time, status string) error {
	record, err := m.store.FindTodayRecord(ctx, userID, day)
	switch {
	case err == nil:
		record.CheckIn = nil
		record.CheckOut = nil
		record.Status = &status
		record.StationID = ptr(leaveStationID)
		_, err = m.store.Update(ctx, record)
		return err

	case errors.Is(err, postgres.ErrNotFound):
		record = newDayRecord(userID, leaveStationID, day)
		record.Status = &status
		_, err = m.store.Create(ctx, record)
		if errors.Is(err, postgres.ErrAlreadyExists) {
			return m.applyAbsenceDay(ctx, userID, day, status)
		}
		return err

	default:
		return err
	}
}

func newDayRecord(userID, stationID string, day time.Time) entity.Attendance {
	attendanceID := uuid.NewString()
	return entity.Attendance{
		AttendanceID: &attendanceID,
		UserID:       &userID,
		WorkDay:      day,
		StationID:    &stationID,
	}
}

func ptr(s string) *string {
	return &s
}
