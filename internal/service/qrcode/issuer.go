package qrcode

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/GabrielArdy/sigap-backend/foundation/web"
	"github.com/GabrielArdy/sigap-backend/internal/entity"
	"github.com/GabrielArdy/sigap-backend/internal/pkg/config"
	"github.com/GabrielArdy/sigap-backend/internal/service/qrsign"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	qr "github.com/skip2/go-qrcode"
)

// ErrGeneration reports a failed QR issuance.
var ErrGeneration = errors.New("qr generation failed")

// AuditStore persists the write-only issuance log. Verification never
// reads it back.
type AuditStore interface {
	Create(ctx context.Context, record entity.QR) error
}

// IssueResponse is returned to the station client.
type IssueResponse struct {
	QRCode    string    `json:"qrCode"`
	Data      TokenData `json:"data"`
	ExpiresIn int       `json:"expiresIn"`
}

// Issuer produces station-bound, time-limited QR tokens.
type Issuer struct {
	signer *qrsign.Signer
	audit  AuditStore
	cache  *redis.Client
	expiry time.Duration
	size   int

	now func() time.Time
}

// NewIssuer wires an Issuer from configuration. cache may be nil, the
// active-token cache is best effort.
func NewIssuer(cfg *config.Config, signer *qrsign.Signer, audit AuditStore, cache *redis.Client) *Issuer {
	return &Issuer{
		signer: signer,
		audit:  audit,
		cache:  cache,
		expiry: time.Duration(cfg.QRExpiryMinutes) * time.Minute,
		size:   cfg.QRImageSize,
		now:    time.Now,
	}
}

// Issue creates a signed token for the station, renders it as a PNG QR
// image and appends an audit record.
func (i *Issuer) Issue(ctx context.Context, stationID string) (IssueResponse, error) {
	if stationID == "" {
		return IssueResponse{}, web.NewRequestError(errors.Wrap(ErrGeneration, "station id is required"), http.StatusBadRequest)
	}

	expiredAt := i.now().Add(i.expiry)

	data := TokenData{
		StationID: stationID,
		ExpiredAt: expiredAt.Format(TimeLayout),
	}
	data.Signature = i.signer.Sign(Payload(data.StationID, data.ExpiredAt))
	if data.Signature == "" {
		return IssueResponse{}, web.NewRequestError(errors.Wrap(ErrGeneration, "signing token"), http.StatusInternalServerError)
	}

	content, err := json.Marshal(data)
	if err != nil {
		return IssueResponse{}, web.NewRequestError(errors.Wrap(ErrGeneration, "encoding token"), http.StatusInternalServerError)
	}

	png, err := qr.Encode(string(content), qr.Highest, i.size)
	if err != nil {
		return IssueResponse{}, web.NewRequestError(errors.Wrapf(ErrGeneration, "rendering qr image: %v", err), http.StatusInternalServerError)
	}
	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	qrID := uuid.NewString()
	record := entity.QR{
		QrID:      &qrID,
		QrImage:   &image,
		QrToken:   &data.Signature,
		ExpiredAt: expiredAt,
		StationID: &stationID,
	}
	record.CreatedAt = i.now()
	if err := i.audit.Create(ctx, record); err != nil {
		return IssueResponse{}, errors.Wrap(err, "persisting qr audit record")
	}

	i.cacheActive(ctx, stationID, content)

	return IssueResponse{
		QRCode:    image,
		Data:      data,
		ExpiresIn: int(i.expiry.Seconds()),
	}, nil
}

// cacheActive keeps the latest token per station in redis for the rest of
// its lifetime. Failures only lose the cache, never the issuance.
func (i *Issuer) cacheActive(ctx context.Context, stationID string, content []byte) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Set(ctx, ActiveTokenKey(stationID), content, i.expiry).Err(); err != nil {
		log.Printf("caching active qr for station %s: %v", stationID, err)
	}
}

// ActiveToken returns the cached token for a station, if one is still
// valid.
func (i *Issuer) ActiveToken(ctx context.Context, stationID string) (TokenData, bool) {
	if i.cache == nil {
		return TokenData{}, false
	}

	raw, err := i.cache.Get(ctx, ActiveTokenKey(stationID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("reading active qr for station %s: %v", stationID, err)
		}
		return TokenData{}, false
	}

	var data TokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return TokenData{}, false
	}

	return data, true
}

// ActiveTokenKey is the redis key holding the latest issued token for a
// station.
func ActiveTokenKey(stationID string) string {
	return "qr:active:" + stationID
}
