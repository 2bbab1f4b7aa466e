package checkin

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/repository/postgres"
	"github.com/GabrielArdy/sigap-backend/internal/service/geo"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrcode"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"

	"github.com/pkg/errors"
)

// memStore is an in-memory AttendanceStore with the same uniqueness
// behavior as the attendance table.
type memStore struct {
	mu      sync.Mutex
	records map[string]entity.Attendance
}

func newMemStore() *memStore {
	return &memStore{records: map[string]entity.Attendance{}}
}

func dayKey(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (s *memStore) FindTodayRecord(_ context.Context, userID string, day time.Time) (entity.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[dayKey(userID, day)]
	if !ok {
		return entity.Attendance{}, postgres.ErrNotFound
	}
	return record, nil
}

func (s *memStore) Create(_ context.Context, record entity.Attendance) (entity.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(*record.UserID, record.WorkDay)
	if _, ok := s.records[key]; ok {
		return entity.Attendance{}, postgres.ErrAlreadyExists
	}
	s.records[key] = record
	return record, nil
}

func (s *memStore) Update(_ context.Context, record entity.Attendance) (entity.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey(*record.UserID, record.WorkDay)
	if _, ok := s.records[key]; !ok {
		return entity.Attendance{}, postgres.ErrNotFound
	}
	s.records[key] = record
	return record, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type memStations struct {
	mu       sync.Mutex
	stations map[string]entity.Station
	touched  int
}

func newMemStations(stations ...entity.Station) *memStations {
	m := &memStations{stations: map[string]entity.Station{}}
	for _, st := range stations {
		m.stations[*st.StationID] = st
	}
	return m
}

func (s *memStations) GetByStationID(_ context.Context, stationID string) (entity.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	station, ok := s.stations[stationID]
	if !ok {
		return entity.Station{}, postgres.ErrNotFound
	}
	return station, nil
}

func (s *memStations) TouchLastActive(_ context.Context, stationID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched++
	return nil
}

func testStation(stationID string, lat, lon, radius float64) entity.Station {
	status := entity.StationActive
	return entity.Station{
		StationID:       &stationID,
		Name:            &stationID,
		Latitude:        lat,
		Longitude:       lon,
		RadiusThreshold: radius,
		Status:          &status,
	}
}

func signedRequest(signer *qrsign.Signer, userID, stationID string, expiredAt, scannedAt time.Time, loc Location) ScanRequest {
	expiry := expiredAt.Format(qrcode.TimeLayout)
	return ScanRequest{
		UserID:    userID,
		ScannedAt: scannedAt,
		Location:  &loc,
		QRData: &QRData{
			StationID: stationID,
			ExpiredAt: expiry,
			Signature: signer.Sign(qrcode.Payload(stationID, expiry)),
		},
	}
}

func newTestService(stations StationStore, store AttendanceStore) (*Service, *qrsign.Signer) {
	signer := qrsign.New("protocol-test-secret")
	return New(stations, store, signer), signer
}

func TestCheckInHappyPath(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	req := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, Location{Latitude: 1.00001, Longitude: 1.0})

	record, err := svc.CheckIn(context.Background(), req)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if *record.Status != entity.StatusCheckedIn {
		t.Errorf("status = %s, want %s", *record.Status, entity.StatusCheckedIn)
	}
	if record.CheckIn == nil || !record.CheckIn.Equal(now) {
		t.Errorf("check_in = %v, want %v", record.CheckIn, now)
	}
	if record.CheckOut != nil {
		t.Errorf("check_out = %v, want nil", record.CheckOut)
	}
	if stations.touched != 1 {
		t.Errorf("station last_active touched %d times, want 1", stations.touched)
	}
}

func TestCheckInRejectsMissingFields(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	valid := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, Location{Latitude: 1.0, Longitude: 1.0})

	cases := map[string]func(r ScanRequest) ScanRequest{
		"user_id":    func(r ScanRequest) ScanRequest { r.UserID = ""; return r },
		"scanned_at": func(r ScanRequest) ScanRequest { r.ScannedAt = time.Time{}; return r },
		"location":   func(r ScanRequest) ScanRequest { r.Location = nil; return r },
		"qr_data":    func(r ScanRequest) ScanRequest { r.QRData = nil; return r },
		"signature": func(r ScanRequest) ScanRequest {
			qr := *r.QRData
			qr.Signature = ""
			r.QRData = &qr
			return r
		},
	}

	for name, mutate := range cases {
		if _, err := svc.CheckIn(context.Background(), mutate(valid)); err == nil {
			t.Errorf("missing %s accepted", name)
		}
	}
	if store.count() != 0 {
		t.Errorf("invalid requests created %d records", store.count())
	}
}

func TestCheckInRejectsBadSignature(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	req := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, Location{Latitude: 1.0, Longitude: 1.0})
	// Re-bind the token to another station without re-signing.
	req.QRData.StationID = "ST2"

	_, err := svc.CheckIn(context.Background(), req)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestCheckInExpiryBoundary(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	expiredAt := time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC)

	// Scanning at exactly the expiry instant is still valid.
	req := signedRequest(signer, "u-1", "ST1", expiredAt, expiredAt, Location{Latitude: 1.0, Longitude: 1.0})
	if _, err := svc.CheckIn(context.Background(), req); err != nil {
		t.Errorf("scan at expiry instant rejected: %v", err)
	}

	// One millisecond later is expired.
	req = signedRequest(signer, "u-2", "ST1", expiredAt, expiredAt.Add(time.Millisecond), Location{Latitude: 1.0, Longitude: 1.0})
	_, err := svc.CheckIn(context.Background(), req)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestCheckInUnknownStation(t *testing.T) {
	store := newMemStore()
	svc, signer := newTestService(newMemStations(), store)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	req := signedRequest(signer, "u-1", "GHOST", now.Add(5*time.Minute), now, Location{Latitude: 1.0, Longitude: 1.0})

	_, err := svc.CheckIn(context.Background(), req)
	if !errors.Is(err, ErrStationNotFound) {
		t.Errorf("err = %v, want ErrStationNotFound", err)
	}
}

func TestCheckInGeofenceGate(t *testing.T) {
	// A scan 0.00046 degrees north of the station is ~51m away.
	scanLoc := Location{Latitude: 1.00046, Longitude: 1.0}
	distance, err := geo.DistanceMeters(scanLoc.Latitude, scanLoc.Longitude, 1.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Threshold exactly at the computed distance: accepted.
	store := newMemStore()
	svc, signer := newTestService(newMemStations(testStation("ST1", 1.0, 1.0, distance)), store)
	req := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, scanLoc)
	if _, err := svc.CheckIn(context.Background(), req); err != nil {
		t.Errorf("scan at exactly the radius rejected: %v", err)
	}

	// One meter tighter: rejected with the distance in the message.
	store = newMemStore()
	svc, signer = newTestService(newMemStations(testStation("ST1", 1.0, 1.0, distance-1)), store)
	req = signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, scanLoc)
	_, err = svc.CheckIn(context.Background(), req)

	var outOfRange *OutOfRangeError
	if !errors.As(err, &outOfRange) {
		t.Fatalf("err = %v, want OutOfRangeError", err)
	}
	if outOfRange.DistanceMeters != distance {
		t.Errorf("reported distance = %f, want %f", outOfRange.DistanceMeters, distance)
	}
	if store.count() != 0 {
		t.Error("out of range scan created a record")
	}
}

func TestRepeatedCheckInKeepsOneRecord(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	first := time.Date(2026, 3, 2, 8, 55, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	req := signedRequest(signer, "u-1", "ST1", first.Add(5*time.Minute), first, Location{Latitude: 1.0, Longitude: 1.0})
	if _, err := svc.CheckIn(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	req = signedRequest(signer, "u-1", "ST1", second.Add(5*time.Minute), second, Location{Latitude: 1.0, Longitude: 1.0})
	record, err := svc.CheckIn(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if store.count() != 1 {
		t.Errorf("two sequential check-ins produced %d records, want 1", store.count())
	}
	if !record.CheckIn.Equal(second) {
		t.Errorf("check_in = %v, want the later scan %v", record.CheckIn, second)
	}
	if *record.Status != entity.StatusCheckedIn {
		t.Errorf("status = %s, want %s", *record.Status, entity.StatusCheckedIn)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	req := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, Location{Latitude: 1.0, Longitude: 1.0})

	_, err := svc.CheckOut(context.Background(), req)
	if !errors.Is(err, ErrNoCheckInRecord) {
		t.Errorf("err = %v, want ErrNoCheckInRecord", err)
	}
}

func TestReCheckInAfterCompletedDay(t *testing.T) {
	// Documented policy: a new check-in after check-out reopens the day.
	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	morning := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	evening := morning.Add(8 * time.Hour)
	loc := Location{Latitude: 1.0, Longitude: 1.0}

	if _, err := svc.CheckIn(context.Background(), signedRequest(signer, "u-1", "ST1", morning.Add(5*time.Minute), morning, loc)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CheckOut(context.Background(), signedRequest(signer, "u-1", "ST1", evening.Add(5*time.Minute), evening, loc)); err != nil {
		t.Fatal(err)
	}

	later := evening.Add(time.Hour)
	record, err := svc.CheckIn(context.Background(), signedRequest(signer, "u-1", "ST1", later.Add(5*time.Minute), later, loc))
	if err != nil {
		t.Fatal(err)
	}
	if *record.Status != entity.StatusCheckedIn {
		t.Errorf("status after re-check-in = %s, want %s", *record.Status, entity.StatusCheckedIn)
	}
	if store.count() != 1 {
		t.Errorf("re-check-in produced %d records, want 1", store.count())
	}
}

// gateStore forces the first two FindTodayRecord calls to rendezvous so
// both racing check-ins observe "no record yet" before either insert runs.
type gateStore struct {
	inner   *memStore
	calls   int32
	arrived int32
	ready   chan struct{}
}

func (g *gateStore) FindTodayRecord(ctx context.Context, userID string, day time.Time) (entity.Attendance, error) {
	n := atomic.AddInt32(&g.calls, 1)
	record, err := g.inner.FindTodayRecord(ctx, userID, day)
	if n <= 2 {
		if atomic.AddInt32(&g.arrived, 1) == 2 {
			close(g.ready)
		}
		<-g.ready
	}
	return record, err
}

func (g *gateStore) Create(ctx context.Context, record entity.Attendance) (entity.Attendance, error) {
	return g.inner.Create(ctx, record)
}

func (g *gateStore) Update(ctx context.Context, record entity.Attendance) (entity.Attendance, error) {
	return g.inner.Update(ctx, record)
}

func TestConcurrentFirstCheckInSettlesIntoOneRecord(t *testing.T) {
	inner := newMemStore()
	store := &gateStore{inner: inner, ready: make(chan struct{})}
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc, signer := newTestService(stations, store)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	req := signedRequest(signer, "u-1", "ST1", now.Add(5*time.Minute), now, Location{Latitude: 1.0, Longitude: 1.0})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("racer %d: %v", i, err)
		}
	}
	if inner.count() != 1 {
		t.Errorf("concurrent first check-ins produced %d records, want 1", inner.count())
	}
}

func TestApplyLeaveOrSickCoversRangeInclusive(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store)

	start := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	if err := manager.ApplyLeaveOrSick(context.Background(), "u-1", start, end, entity.RequestSick); err != nil {
		t.Fatal(err)
	}

	if store.count() != 3 {
		t.Fatalf("leave over 3 days produced %d records, want 3", store.count())
	}

	for day := DayOf(start); !day.After(DayOf(end)); day = day.AddDate(0, 0, 1) {
		record, err := store.FindTodayRecord(context.Background(), "u-1", day)
		if err != nil {
			t.Fatalf("day %v: %v", day, err)
		}
		if *record.Status != entity.StatusSick {
			t.Errorf("day %v status = %s, want %s", day, *record.Status, entity.StatusSick)
		}
		if record.CheckIn != nil || record.CheckOut != nil {
			t.Errorf("day %v has scan timestamps on an absence record", day)
		}
	}
}

func TestApplyLeaveOverwritesExistingDayRecord(t *testing.T) {
	store := newMemStore()
	manager := NewManager(store)

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if _, err := manager.ApplyCheckIn(context.Background(), "u-1", "ST1", at); err != nil {
		t.Fatal(err)
	}

	if err := manager.ApplyLeaveOrSick(context.Background(), "u-1", at, at, entity.RequestLeave); err != nil {
		t.Fatal(err)
	}

	record, err := store.FindTodayRecord(context.Background(), "u-1", DayOf(at))
	if err != nil {
		t.Fatal(err)
	}
	if *record.Status != entity.StatusLeave {
		t.Errorf("status = %s, want %s", *record.Status, entity.StatusLeave)
	}
	if record.CheckIn != nil {
		t.Error("leave record kept the old check-in timestamp")
	}
	if store.count() != 1 {
		t.Errorf("overwrite produced %d records, want 1", store.count())
	}
}
