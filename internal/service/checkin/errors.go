package checkin

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain sentinels for a scan attempt. Controllers surface these to the
// client; anything else coming out of the protocol is an internal error.
var (
	ErrInvalidSignature = errors.New("qr signature does not match")
	ErrTokenExpired     = errors.New("qr code has expired")
	ErrStationNotFound  = errors.New("station not found")
	ErrNoCheckInRecord  = errors.New("no check-in record found for today")
)

// OutOfRangeError rejects a scan outside the station geofence. It carries
// the computed distance and the threshold for the user-facing message.
type OutOfRangeError struct {
	DistanceMeters  float64
	ThresholdMeters float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("You are too far from the check-in station (%.0fm away, max allowed: %.0fm)",
		e.DistanceMeters, e.ThresholdMeters)
}
