package qrsign

import (
	"strings"
	"testing"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s := New("test-secret")

	payloads := []map[string]interface{}{
		{"stationId": "ST1", "expiredAt": "2026-01-02T15:04:05Z"},
		{"a": "1"},
		{},
		{"n": 42, "s": "x"},
	}

	for _, p := range payloads {
		sig := s.Sign(p)
		if sig == "" {
			t.Fatalf("Sign(%v) returned empty signature", p)
		}
		if !s.Verify(p, sig) {
			t.Errorf("Verify(%v, Sign(%v)) = false, want true", p, p)
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	s := New("test-secret")

	p := map[string]interface{}{"stationId": "ST1", "expiredAt": "2026-01-02T15:04:05Z"}
	sig := s.Sign(p)

	tampered := []map[string]interface{}{
		{"stationId": "ST2", "expiredAt": "2026-01-02T15:04:05Z"},
		{"stationId": "ST1", "expiredAt": "2026-01-02T15:04:06Z"},
		{"stationId": "ST1"},
		{"stationId": "ST1", "expiredAt": "2026-01-02T15:04:05Z", "extra": "x"},
	}

	for _, p2 := range tampered {
		if s.Verify(p2, sig) {
			t.Errorf("Verify accepted tampered payload %v", p2)
		}
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	p := map[string]interface{}{"stationId": "ST1"}

	sig := New("key-one").Sign(p)
	if New("key-two").Verify(p, sig) {
		t.Error("signature verified under a different key")
	}
}

func TestVerifyRejectsEmptySignature(t *testing.T) {
	s := New("test-secret")
	if s.Verify(map[string]interface{}{"stationId": "ST1"}, "") {
		t.Error("empty signature verified")
	}
}

func TestCanonicalOrdering(t *testing.T) {
	// Serialization must not depend on insertion order.
	data, err := canonicalJSON(map[string]interface{}{
		"expiredAt": "2026-01-02T15:04:05Z",
		"stationId": "ST1",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"expiredAt":"2026-01-02T15:04:05Z","stationId":"ST1"}`
	if string(data) != want {
		t.Errorf("canonicalJSON = %s, want %s", data, want)
	}

	if !strings.HasPrefix(string(data), `{"expiredAt"`) {
		t.Error("keys are not sorted lexicographically")
	}
}

func TestCanonicalOrderingInvariantSignature(t *testing.T) {
	s := New("test-secret")

	// Two maps built in different orders describe the same logical payload.
	a := map[string]interface{}{}
	a["stationId"] = "ST1"
	a["expiredAt"] = "2026-01-02T15:04:05Z"

	b := map[string]interface{}{}
	b["expiredAt"] = "2026-01-02T15:04:05Z"
	b["stationId"] = "ST1"

	if s.Sign(a) != s.Sign(b) {
		t.Error("signature depends on key insertion order")
	}
}
