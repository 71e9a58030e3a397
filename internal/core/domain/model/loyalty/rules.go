package loyalty

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DiscountCooldown is the minimum time between two discounted parcels.
	DiscountCooldown = 30 * 24 * time.Hour

	// FreeDeliveryCooldown is the minimum time between two free deliveries.
	FreeDeliveryCooldown = 365 * 24 * time.Hour
)

var (
	beginnerRate = decimal.RequireFromString("0.05")
	activeRate   = decimal.RequireFromString("0.10")
	proRate      = decimal.RequireFromString("0.15")
	legendRate   = decimal.RequireFromString("0.20")

	// HolidayRate replaces the Legend rate inside the holiday window.
	HolidayRate = decimal.RequireFromString("0.35")
)

// DiscountRate returns the tier's base discount as a fraction, 0 for unknown tiers.
func DiscountRate(t Tier) decimal.Decimal {
	switch t {
	case Beginner:
		return beginnerRate
	case Active:
		return activeRate
	case Pro:
		return proRate
	case Legend:
		return legendRate
	case TierUnknown:
	}
	return decimal.Zero
}

// IsHolidaySeason reports whether now falls in [Dec 20, Jan 7], year-wrapping,
// evaluated on now's calendar date.
func IsHolidaySeason(now time.Time) bool {
	month, day := now.Month(), now.Day()
	return (month == time.December && day >= 20) || (month == time.January && day <= 7)
}

// EffectiveDiscountRate applies the holiday override on top of DiscountRate.
// The override only changes the rate; gating is unaffected.
func EffectiveDiscountRate(t Tier, now time.Time) decimal.Decimal {
	if t == Legend && IsHolidaySeason(now) {
		return HolidayRate
	}
	return DiscountRate(t)
}

// DiscountAvailable is true if the discount was never used or at least
// DiscountCooldown has elapsed since lastUse.
func DiscountAvailable(lastUse *time.Time, now time.Time) bool {
	return cooldownElapsed(lastUse, now, DiscountCooldown)
}

// FreeDeliveryAvailable is true only for a Legend whose last free delivery, if any,
// is at least FreeDeliveryCooldown old.
func FreeDeliveryAvailable(t Tier, lastUse *time.Time, now time.Time) bool {
	if t != Legend {
		return false
	}
	return cooldownElapsed(lastUse, now, FreeDeliveryCooldown)
}

func cooldownElapsed(lastUse *time.Time, now time.Time, cooldown time.Duration) bool {
	if lastUse == nil {
		return true
	}
	return now.Sub(*lastUse) >= cooldown
}
