package services

import (
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/loyalty"
	"postal/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
)

// Tariff holds the configuration constants of the pricing rules. All amounts are
// in the local currency unless stated otherwise.
type Tariff struct {
	LocalBase         decimal.Decimal
	InternationalBase decimal.Decimal
	PerKg             decimal.Decimal
	ChannelSurcharge  map[parcel.Channel]decimal.Decimal
	FragileSurcharge  decimal.Decimal
	InsuranceRate     decimal.Decimal
	// EuroRate is the number of local units per euro.
	EuroRate decimal.Decimal
	// DutyFreeEuro is the duty-free limit in euros. Values strictly above it are taxed.
	DutyFreeEuro decimal.Decimal
	CustomsRate  decimal.Decimal
}

// DefaultTariff returns the standard price list.
func DefaultTariff() Tariff {
	return Tariff{
		LocalBase:         decimal.NewFromInt(50),
		InternationalBase: decimal.NewFromInt(200),
		PerKg:             decimal.NewFromInt(10),
		ChannelSurcharge: map[parcel.Channel]decimal.Decimal{
			parcel.Office:    decimal.Zero,
			parcel.Parcelbox: decimal.NewFromInt(20),
			parcel.Address:   decimal.NewFromInt(50),
			parcel.Taxi:      decimal.NewFromInt(150),
		},
		FragileSurcharge: decimal.NewFromInt(30),
		InsuranceRate:    decimal.RequireFromString("0.02"),
		EuroRate:         decimal.NewFromInt(41),
		DutyFreeEuro:     decimal.NewFromInt(150),
		CustomsRate:      decimal.RequireFromString("0.10"),
	}
}

// Quote is the full price breakdown of a parcel for a given sender.
type Quote struct {
	BaseCost  decimal.Decimal
	ImportTax decimal.Decimal
	// Total is BaseCost + ImportTax before any discount.
	Total decimal.Decimal
	Final decimal.Decimal
	// DiscountRate is the effective rate the sender would get at quote time.
	DiscountRate decimal.Decimal
	// DiscountApplied is true when Final includes the discount. The caller must
	// then consume the sender's discount.
	DiscountApplied bool
	// DiscountDenied is true when a discount was requested while the gate was closed.
	DiscountDenied bool
	HolidayRate    bool
	FreeDelivery   bool
}

// Pricing computes amounts from a parcel's attributes.
//
// Every method is fail-open: a nil input or an internal fault yields the safe
// default (zero for costs, the unmodified amount for discounts) instead of an error.
type Pricing struct {
	tariff Tariff
	clock  kernel.Clock
}

func NewPricing(tariff Tariff, clock kernel.Clock) Pricing {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return Pricing{tariff: tariff, clock: clock}
}

// BaseCost is (Local 50 | International 200) + weight*10 + channel surcharge
// + (Fragile 30) + (insured value * 2% when insured).
func (p Pricing) BaseCost(pc *parcel.Parcel) (cost decimal.Decimal) {
	defer recoverTo(&cost, decimal.Zero)
	if pc == nil {
		return decimal.Zero
	}

	cost = p.tariff.LocalBase
	if pc.Type() == parcel.International {
		cost = p.tariff.InternationalBase
	}
	cost = cost.Add(decimal.NewFromFloat(pc.Weight()).Mul(p.tariff.PerKg))
	cost = cost.Add(p.tariff.ChannelSurcharge[pc.Channel()])
	if pc.Content() == parcel.Fragile {
		cost = cost.Add(p.tariff.FragileSurcharge)
	}
	if pc.Insured() {
		cost = cost.Add(pc.InsuredValue().Mul(p.tariff.InsuranceRate))
	}
	return cost
}

// ImportTax is 10% of the declared value for international parcels whose value
// exceeds the duty-free limit, and zero otherwise.
func (p Pricing) ImportTax(pc *parcel.Parcel) (tax decimal.Decimal) {
	defer recoverTo(&tax, decimal.Zero)
	if pc == nil || pc.Type() != parcel.International {
		return decimal.Zero
	}

	inEuro := pc.DeclaredValue().Div(p.tariff.EuroRate)
	if !inEuro.GreaterThan(p.tariff.DutyFreeEuro) {
		return decimal.Zero
	}
	return pc.DeclaredValue().Mul(p.tariff.CustomsRate)
}

// ApplyDiscount returns amount reduced by the sender's effective rate when
// useDiscount is set and the sender's discount gate is open, and amount otherwise.
// It never consumes the discount.
func (p Pricing) ApplyDiscount(amount decimal.Decimal, sender *client.Client, useDiscount bool) (result decimal.Decimal) {
	defer recoverTo(&result, amount)
	result, _ = p.discount(amount, sender, useDiscount, p.clock.Now())
	return result
}

// FinalPrice is zero for free-delivery parcels or a missing sender, and the
// discounted BaseCost + ImportTax otherwise.
func (p Pricing) FinalPrice(pc *parcel.Parcel, sender *client.Client, useDiscount bool) (price decimal.Decimal) {
	defer recoverTo(&price, decimal.Zero)
	return p.Quote(pc, sender, useDiscount).Final
}

// Quote computes the complete breakdown at the current time. Without a sender
// the breakdown is filled in but Final stays zero.
func (p Pricing) Quote(pc *parcel.Parcel, sender *client.Client, useDiscount bool) (q Quote) {
	defer func() {
		if r := recover(); r != nil {
			q = Quote{}
		}
	}()

	now := p.clock.Now()
	q.BaseCost = p.BaseCost(pc)
	q.ImportTax = p.ImportTax(pc)
	q.Total = q.BaseCost.Add(q.ImportTax)

	if sender == nil {
		q.Final = decimal.Zero
		return q
	}
	q.DiscountRate = sender.DiscountRate(now)
	q.HolidayRate = sender.Tier() == loyalty.Legend && loyalty.IsHolidaySeason(now)

	if pc != nil && pc.FreeDelivery() {
		q.FreeDelivery = true
		q.Final = decimal.Zero
		return q
	}

	q.Final, q.DiscountApplied = p.discount(q.Total, sender, useDiscount, now)
	q.DiscountDenied = useDiscount && !q.DiscountApplied
	return q
}

func (p Pricing) discount(amount decimal.Decimal, sender *client.Client, useDiscount bool, now time.Time) (decimal.Decimal, bool) {
	if !useDiscount || sender == nil || !sender.CanUseDiscount(now) {
		return amount, false
	}
	rate := sender.DiscountRate(now)
	return amount.Mul(decimal.NewFromInt(1).Sub(rate)), true
}

// recoverTo replaces *dst with fallback if the deferring function panics.
func recoverTo(dst *decimal.Decimal, fallback decimal.Decimal) {
	if r := recover(); r != nil {
		*dst = fallback
	}
}
