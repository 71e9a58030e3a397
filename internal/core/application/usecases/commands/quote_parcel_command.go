package commands

import (
	"errors"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/guard"
)

var ErrQuoteParcelCommandIsNotConstructed = errors.New(
	"QuoteParcelCommand must be created via NewQuoteParcelCommand constructor",
)

// QuoteParcelCommand prices a parcel for its sender. It is a command rather than a
// query because an applied discount is consumed.
type QuoteParcelCommand struct {
	trackingCode parcel.TrackingCode
	useDiscount  bool

	guard guard.ConstructorGuard
}

func NewQuoteParcelCommand(trackingCode string, useDiscount bool) (QuoteParcelCommand, error) {
	code, err := parcel.NewTrackingCode(trackingCode)
	if err != nil {
		return QuoteParcelCommand{}, err
	}
	return QuoteParcelCommand{trackingCode: code, useDiscount: useDiscount, guard: guard.NewConstructorGuard()}, nil
}

func (c QuoteParcelCommand) Validate() error {
	return c.guard.Validate(ErrQuoteParcelCommandIsNotConstructed)
}

func (c QuoteParcelCommand) TrackingCode() parcel.TrackingCode { return c.trackingCode }
func (c QuoteParcelCommand) UseDiscount() bool                 { return c.useDiscount }
