package loyalty

import (
	"fmt"
	"strings"

	"postal/internal/pkg/errs"
)

// Tier is the loyalty classification of a client.
//
//	Beginner (0-10) ──> Active (11-50) ──> Pro (51-199) ──> Legend (200+)
//
// Tiers only move upwards because the parcel count never decreases.
type Tier int

const (
	// TierUnknown catches uninitialized values.
	TierUnknown Tier = iota
	Beginner
	Active
	Pro
	Legend
)

// Parcel count thresholds, evaluated from the highest down with >=.
const (
	ActiveThreshold = 11
	ProThreshold    = 51
	LegendThreshold = 200
)

func getTierStrings() map[Tier]string {
	return map[Tier]string{
		TierUnknown: "Unknown",
		Beginner:    "Beginner",
		Active:      "Active",
		Pro:         "Pro",
		Legend:      "Legend",
	}
}

// TierFor maps a cumulative parcel count to its tier.
func TierFor(parcelCount int) Tier {
	switch {
	case parcelCount >= LegendThreshold:
		return Legend
	case parcelCount >= ProThreshold:
		return Pro
	case parcelCount >= ActiveThreshold:
		return Active
	default:
		return Beginner
	}
}

// ParseTier converts the persisted name back into a Tier. Matching is case-insensitive.
func ParseTier(s string) (Tier, error) {
	for t, name := range getTierStrings() {
		if t != TierUnknown && strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("tier is invalid", fmt.Errorf("%q is not a loyalty tier", s))
}

// Validate rejects TierUnknown and out-of-range values.
func (t Tier) Validate() error {
	if t < Beginner || t > Legend {
		return errs.NewValueIsInvalidErrorWithCause("tier is invalid", fmt.Errorf("%d is not a valid tier", t))
	}
	return nil
}

func (t Tier) String() string {
	if s, ok := getTierStrings()[t]; ok {
		return s
	}
	return "Unknown"
}
