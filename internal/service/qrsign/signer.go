package qrsign

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Signer authenticates station token payloads with HMAC-SHA256. The same
// logical payload must always produce the same signature, so the payload is
// serialized as a JSON object with its keys in ascending byte order before
// hashing.
type Signer struct {
	secret []byte
}

// New creates a Signer from the configured secret key.
func New(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex encoded HMAC-SHA256 digest of the canonicalized
// payload. A payload that cannot be serialized signs to the empty string.
func (s *Signer) Sign(payload map[string]interface{}) string {
	data, err := canonicalJSON(payload)
	if err != nil {
		return ""
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the payload signature and compares it in constant time.
// It never panics; a malformed payload or empty signature verifies false.
func (s *Signer) Verify(payload map[string]interface{}, signature string) bool {
	if signature == "" {
		return false
	}

	data, err := canonicalJSON(payload)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	want := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(want), []byte(signature))
}

// canonicalJSON serializes the payload with keys sorted lexicographically.
func canonicalJSON(payload map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(payload[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
