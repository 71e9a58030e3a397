package loyalty_test

import (
	"testing"
	"time"

	"postal/internal/core/domain/model/loyalty"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestDiscountRate(t *testing.T) {
	tests := []struct {
		tier loyalty.Tier
		want string
	}{
		{loyalty.Beginner, "0.05"},
		{loyalty.Active, "0.1"},
		{loyalty.Pro, "0.15"},
		{loyalty.Legend, "0.2"},
		{loyalty.TierUnknown, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			assert.True(t, decimal.RequireFromString(tt.want).Equal(loyalty.DiscountRate(tt.tier)))
		})
	}
}

func TestIsHolidaySeason(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"day before window", date(2026, time.December, 19), false},
		{"window opens", date(2026, time.December, 20), true},
		{"new year's eve", date(2026, time.December, 31), true},
		{"new year", date(2027, time.January, 1), true},
		{"window closes", date(2027, time.January, 7), true},
		{"day after window", date(2027, time.January, 8), false},
		{"summer", date(2026, time.July, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loyalty.IsHolidaySeason(tt.at))
		})
	}
}

func TestEffectiveDiscountRate(t *testing.T) {
	holiday := date(2026, time.December, 24)
	ordinary := date(2026, time.October, 19)

	assert.True(t, loyalty.HolidayRate.Equal(loyalty.EffectiveDiscountRate(loyalty.Legend, holiday)))
	assert.True(t, decimal.RequireFromString("0.2").Equal(loyalty.EffectiveDiscountRate(loyalty.Legend, ordinary)))
	assert.True(t, decimal.RequireFromString("0.15").Equal(loyalty.EffectiveDiscountRate(loyalty.Pro, holiday)),
		"holiday override applies to Legend only")
}

func TestDiscountAvailable(t *testing.T) {
	now := date(2026, time.October, 19)

	t.Run("never used", func(t *testing.T) {
		assert.True(t, loyalty.DiscountAvailable(nil, now))
	})

	t.Run("just used", func(t *testing.T) {
		assert.False(t, loyalty.DiscountAvailable(&now, now))
	})

	t.Run("29 days ago", func(t *testing.T) {
		last := now.Add(-29 * 24 * time.Hour)
		assert.False(t, loyalty.DiscountAvailable(&last, now))
	})

	t.Run("exactly 30 days ago", func(t *testing.T) {
		last := now.Add(-loyalty.DiscountCooldown)
		assert.True(t, loyalty.DiscountAvailable(&last, now))
	})
}

func TestFreeDeliveryAvailable(t *testing.T) {
	now := date(2026, time.October, 19)
	lastYear := now.Add(-loyalty.FreeDeliveryCooldown)
	recent := now.Add(-364 * 24 * time.Hour)

	assert.True(t, loyalty.FreeDeliveryAvailable(loyalty.Legend, nil, now))
	assert.True(t, loyalty.FreeDeliveryAvailable(loyalty.Legend, &lastYear, now))
	assert.False(t, loyalty.FreeDeliveryAvailable(loyalty.Legend, &recent, now))
	assert.False(t, loyalty.FreeDeliveryAvailable(loyalty.Pro, nil, now), "only Legend qualifies")
}
