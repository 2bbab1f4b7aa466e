package qrcode

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/config"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"
)

type memAudit struct {
	records []entity.QR
}

func (a *memAudit) Create(_ context.Context, record entity.QR) error {
	a.records = append(a.records, record)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{QRExpiryMinutes: 5, QRImageSize: 256}
}

func testIssuer(audit *memAudit, now time.Time) (*Issuer, *qrsign.Signer) {
	signer := qrsign.New("issuer-test-secret")
	issuer := NewIssuer(testConfig(), signer, audit, nil)
	issuer.now = func() time.Time { return now }
	return issuer, signer
}

func TestIssueProducesVerifiableToken(t *testing.T) {
	audit := &memAudit{}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	issuer, signer := testIssuer(audit, now)

	resp, err := issuer.Issue(context.Background(), "ST1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if resp.Data.StationID != "ST1" {
		t.Errorf("stationId = %s, want ST1", resp.Data.StationID)
	}
	if resp.ExpiresIn != 300 {
		t.Errorf("expiresIn = %d, want 300", resp.ExpiresIn)
	}

	wantExpiry := now.Add(5 * time.Minute).Format(TimeLayout)
	if resp.Data.ExpiredAt != wantExpiry {
		t.Errorf("expiredAt = %s, want %s", resp.Data.ExpiredAt, wantExpiry)
	}

	if !signer.Verify(Payload(resp.Data.StationID, resp.Data.ExpiredAt), resp.Data.Signature) {
		t.Error("issued token does not verify against its own payload")
	}

	if !strings.HasPrefix(resp.QRCode, "data:image/png;base64,") {
		t.Errorf("qr image is not a png data url: %.40s", resp.QRCode)
	}
}

func TestIssueWritesAuditRecord(t *testing.T) {
	audit := &memAudit{}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	issuer, _ := testIssuer(audit, now)

	resp, err := issuer.Issue(context.Background(), "ST1")
	if err != nil {
		t.Fatal(err)
	}

	if len(audit.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(audit.records))
	}

	record := audit.records[0]
	if record.QrID == nil || *record.QrID == "" {
		t.Error("audit record is missing qr_id")
	}
	if *record.StationID != "ST1" {
		t.Errorf("audit station_id = %s, want ST1", *record.StationID)
	}
	if *record.QrToken != resp.Data.Signature {
		t.Error("audit token does not match the issued signature")
	}
	if !record.ExpiredAt.Equal(now.Add(5 * time.Minute)) {
		t.Errorf("audit expired_at = %v, want %v", record.ExpiredAt, now.Add(5*time.Minute))
	}
}

func TestIssueRejectsEmptyStationID(t *testing.T) {
	audit := &memAudit{}
	issuer, _ := testIssuer(audit, time.Now())

	if _, err := issuer.Issue(context.Background(), ""); err == nil {
		t.Fatal("empty station id accepted")
	}
	if len(audit.records) != 0 {
		t.Error("failed issuance still wrote an audit record")
	}
}
