package qrcode

import "time"

// TimeLayout is the wire format for token expiry timestamps. The raw
// string travels inside the QR content and must be fed back to the signer
// unmodified, re-formatting it would change the signature.
const TimeLayout = time.RFC3339

// TokenData is the machine-readable content of a station QR code.
type TokenData struct {
	StationID string `json:"stationId"`
	ExpiredAt string `json:"expiredAt"`
	Signature string `json:"signature"`
}

// Payload builds the signable part of a station token. Signature
// generation and verification must both go through here so the two sides
// always canonicalize the same fields.
func Payload(stationID, expiredAt string) map[string]interface{} {
	return map[string]interface{}{
		"stationId": stationID,
		"expiredAt": expiredAt,
	}
}
