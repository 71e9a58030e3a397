package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/pkg/errs"
	"postal/internal/pkg/guard"
)

const (
	trackingCodeLayout = "20060102150405"

	// TrackingCodeLength is the timestamp (14 digits) followed by the 4-digit suffix.
	TrackingCodeLength = len(trackingCodeLayout) + 4

	// MinTrackingSuffix and MaxTrackingSuffix bound the random suffix, inclusive.
	MinTrackingSuffix = 1000
	MaxTrackingSuffix = 9999
)

var ErrTrackingCodeIsNotConstructed = errors.New("TrackingCode must be created via NewTrackingCode or GenerateTrackingCode")

// TrackingCode is the externally visible parcel identifier, "yyyyMMddHHmmss" of the
// creation time followed by a 4-digit random suffix.
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode parses an existing code. Surrounding whitespace is ignored.
func NewTrackingCode(value string) (TrackingCode, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if len(value) != TrackingCodeLength || strings.IndexFunc(value, notDigit) >= 0 {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode",
			fmt.Errorf("%q is not %d digits", value, TrackingCodeLength),
		)
	}
	return TrackingCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

// GenerateTrackingCode builds the code for a parcel created at now with the given suffix.
func GenerateTrackingCode(now time.Time, suffix int) (TrackingCode, error) {
	if suffix < MinTrackingSuffix || suffix > MaxTrackingSuffix {
		return TrackingCode{}, errs.NewValueIsOutOfRangeError("suffix", suffix, MinTrackingSuffix, MaxTrackingSuffix)
	}
	return NewTrackingCode(fmt.Sprintf("%s%d", now.Format(trackingCodeLayout), suffix))
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
