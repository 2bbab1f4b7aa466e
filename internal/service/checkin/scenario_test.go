package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/config"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrcode"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"
)

type nopAudit struct{}

func (nopAudit) Create(context.Context, entity.QR) error { return nil }

// Full scan lifecycle: an issued QR for ST1 is scanned ~1.1m from the
// station within its validity window, checked in and then checked out.
func TestIssueScanCheckInCheckOut(t *testing.T) {
	signer := qrsign.New("scenario-secret")

	now := time.Now().UTC()
	issuer := qrcode.NewIssuer(&config.Config{QRExpiryMinutes: 5, QRImageSize: 256}, signer, nopAudit{}, nil)

	issued, err := issuer.Issue(context.Background(), "ST1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	store := newMemStore()
	stations := newMemStations(testStation("ST1", 1.0, 1.0, 50))
	svc := New(stations, store, signer)

	scan := ScanRequest{
		UserID:    "u-1",
		ScannedAt: now.Add(time.Minute),
		Location:  &Location{Latitude: 1.00001, Longitude: 1.0},
		QRData: &QRData{
			StationID: issued.Data.StationID,
			ExpiredAt: issued.Data.ExpiredAt,
			Signature: issued.Data.Signature,
		},
	}

	record, err := svc.CheckIn(context.Background(), scan)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if *record.Status != entity.StatusCheckedIn {
		t.Fatalf("status after check-in = %s, want %s", *record.Status, entity.StatusCheckedIn)
	}

	scan.ScannedAt = now.Add(2 * time.Minute)
	record, err = svc.CheckOut(context.Background(), scan)
	if err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	if *record.Status != entity.StatusCompleted {
		t.Errorf("status after check-out = %s, want %s", *record.Status, entity.StatusCompleted)
	}
	if record.CheckOut == nil || !record.CheckOut.Equal(scan.ScannedAt) {
		t.Errorf("check_out = %v, want %v", record.CheckOut, scan.ScannedAt)
	}
	if store.count() != 1 {
		t.Errorf("scenario produced %d records, want 1", store.count())
	}
}
