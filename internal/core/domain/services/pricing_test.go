package services_test

import (
	"testing"
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/loyalty"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestPricing_BaseCost(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))

	tests := []struct {
		name string
		opts []parcelOption
		want string
	}{
		{"local document office 2kg", nil, "70"},
		{"parcelbox surcharge", []parcelOption{func(s *parcel.Spec) { s.Channel = parcel.Parcelbox }}, "90"},
		{"taxi surcharge", []parcelOption{func(s *parcel.Spec) { s.Channel = parcel.Taxi }}, "220"},
		{"fragile", []parcelOption{func(s *parcel.Spec) { s.Content = parcel.Fragile }}, "100"},
		{"international address insured", []parcelOption{func(s *parcel.Spec) {
			s.Type = parcel.International
			s.Channel = parcel.Address
			s.Weight = 3.5
			s.Insured = true
			s.InsuredValue = dec("1000")
		}}, "305"},
		{"insured value ignored when not insured", []parcelOption{func(s *parcel.Spec) {
			s.InsuredValue = dec("1000")
		}}, "70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, pricing.BaseCost(newParcel(t, tt.opts...)))
		})
	}
}

func TestPricing_ImportTax(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))

	international := func(value string) parcelOption {
		return func(s *parcel.Spec) {
			s.Type = parcel.International
			s.DeclaredValue = dec(value)
		}
	}

	assertDecimal(t, "0", pricing.ImportTax(newParcel(t, international("6150"))))
	assertDecimal(t, "619.1", pricing.ImportTax(newParcel(t, international("6191"))))
	assertDecimal(t, "0", pricing.ImportTax(newParcel(t, func(s *parcel.Spec) { s.DeclaredValue = dec("100000") })))
}

func TestPricing_ApplyDiscount(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))
	amount := dec("200")

	t.Run("not requested", func(t *testing.T) {
		assertDecimal(t, "200", pricing.ApplyDiscount(amount, newClient(t, 1, 0), false))
	})

	t.Run("beginner gets 5%", func(t *testing.T) {
		assertDecimal(t, "190", pricing.ApplyDiscount(amount, newClient(t, 1, 0), true))
	})

	t.Run("pro gets 15%", func(t *testing.T) {
		assertDecimal(t, "170", pricing.ApplyDiscount(amount, newClient(t, 1, 60), true))
	})

	t.Run("closed gate leaves amount unchanged", func(t *testing.T) {
		last := now.Add(-10 * 24 * time.Hour)
		c, err := client.RestoreClient(1, client.Contacts{FullName: "A", Phone: "1"}, client.Individual, 0, &last, nil)
		require.NoError(t, err)

		assertDecimal(t, "200", pricing.ApplyDiscount(amount, c, true))
		assert.Equal(t, last, *c.LastDiscountUse(), "pricing never consumes the discount")
	})

	t.Run("legend holiday rate", func(t *testing.T) {
		holiday := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
		assertDecimal(t, "130", holiday.ApplyDiscount(amount, newClient(t, 1, loyalty.LegendThreshold), true))
	})

	t.Run("nil sender", func(t *testing.T) {
		assertDecimal(t, "200", pricing.ApplyDiscount(amount, nil, true))
	})
}

func TestPricing_FinalPrice(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))
	sender := newClient(t, 1, 0)

	p := newParcel(t, func(s *parcel.Spec) {
		s.Type = parcel.International
		s.DeclaredValue = dec("8200")
	})
	// base 200 + 20 = 220, tax 820, total 1040, 5% off = 988
	assertDecimal(t, "988", pricing.FinalPrice(p, sender, true))
	assertDecimal(t, "1040", pricing.FinalPrice(p, sender, false))

	free := newParcel(t, func(s *parcel.Spec) { s.FreeDelivery = true })
	assertDecimal(t, "0", pricing.FinalPrice(free, sender, true))
}

func TestPricing_Quote(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))

	t.Run("applied", func(t *testing.T) {
		q := pricing.Quote(newParcel(t), newClient(t, 1, 11), true)

		assertDecimal(t, "70", q.BaseCost)
		assertDecimal(t, "0", q.ImportTax)
		assertDecimal(t, "70", q.Total)
		assertDecimal(t, "63", q.Final)
		assertDecimal(t, "0.1", q.DiscountRate)
		assert.True(t, q.DiscountApplied)
		assert.False(t, q.DiscountDenied)
		assert.False(t, q.HolidayRate)
	})

	t.Run("denied", func(t *testing.T) {
		last := now.Add(-time.Hour)
		c, err := client.RestoreClient(1, client.Contacts{FullName: "A", Phone: "1"}, client.Individual, 0, &last, nil)
		require.NoError(t, err)

		q := pricing.Quote(newParcel(t), c, true)

		assertDecimal(t, "70", q.Final)
		assert.False(t, q.DiscountApplied)
		assert.True(t, q.DiscountDenied)
	})
}

func TestPricing_FailOpen(t *testing.T) {
	// A zero tariff divides by a zero euro rate.
	pricing := services.NewPricing(services.Tariff{}, kernel.FixedClock(now))
	p := newParcel(t, func(s *parcel.Spec) {
		s.Type = parcel.International
		s.DeclaredValue = dec("10000")
	})

	assert.NotPanics(t, func() {
		assertDecimal(t, "0", pricing.ImportTax(p))
		assertDecimal(t, "0", pricing.BaseCost(nil))
		assertDecimal(t, "0", pricing.ImportTax(nil))
		assertDecimal(t, "0", pricing.FinalPrice(nil, nil, true))
	})
}

func TestPricing_MissingSender(t *testing.T) {
	pricing := services.NewPricing(services.DefaultTariff(), kernel.FixedClock(now))
	p := newParcel(t)

	q := pricing.Quote(p, nil, true)

	assert.True(t, q.BaseCost.IsPositive())
	assertDecimal(t, q.BaseCost.Add(q.ImportTax).String(), q.Total)
	assertDecimal(t, "0", q.Final)
	assert.False(t, q.DiscountApplied)
	assertDecimal(t, "0", pricing.FinalPrice(p, nil, false))
}
